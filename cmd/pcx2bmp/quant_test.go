package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	img "github.com/edwardgushchin/SDL-image"
)

func TestQuantizeKeepsIndexedSurface(t *testing.T) {
	s, err := img.NewSurface(2, 2, img.PixelFormatIndex8)
	require.NoError(t, err)
	s.Palette = []img.Color{{R: 1, G: 2, B: 3}}

	var q Quantizer = &MedianCutQuantizer{}
	out, err := q.Quantize(s)
	require.NoError(t, err)
	require.Same(t, s, out)
}

func TestQuantizeTrueColor(t *testing.T) {
	s, err := img.NewSurface(4, 2, img.PixelFormatRGB24)
	require.NoError(t, err)
	for y := 0; y < s.H; y++ {
		row := s.Row(y)
		for x := 0; x < s.W; x++ {
			row[x*3+0] = 200
			row[x*3+1] = 100
			row[x*3+2] = 50
		}
	}

	var q Quantizer = &MedianCutQuantizer{}
	out, err := q.Quantize(s)
	require.NoError(t, err)
	require.Equal(t, img.PixelFormatIndex8, out.Format)
	require.Equal(t, s.W, out.W)
	require.Equal(t, s.H, out.H)
	require.NotEmpty(t, out.Palette)
	require.LessOrEqual(t, len(out.Palette), 256)

	// Single-color image: every pixel maps to that exact color.
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			idx := out.Row(y)[x]
			require.Equal(t, img.Color{R: 200, G: 100, B: 50}, out.Palette[idx])
		}
	}
}
