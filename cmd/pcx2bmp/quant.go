package main

import (
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"

	img "github.com/edwardgushchin/SDL-image"
)

// Quantizer приводит поверхность к 256-цветному индексированному виду.
type Quantizer interface {
	Quantize(*img.Surface) (*img.Surface, error)
}

// MedianCutQuantizer строит палитру методом median cut.
type MedianCutQuantizer struct{}

func (q *MedianCutQuantizer) Quantize(s *img.Surface) (*img.Surface, error) {
	// Индексированные поверхности уже несут палитру.
	if s.Format == img.PixelFormatIndex8 {
		return s, nil
	}

	mcq := quantize.MedianCutQuantizer{}
	pal := mcq.Quantize(make(color.Palette, 0, 256), s.Image())

	out, err := img.NewSurface(s.W, s.H, img.PixelFormatIndex8)
	if err != nil {
		return nil, err
	}
	out.Palette = make([]img.Color, len(pal))
	for i, c := range pal {
		r, g, b, _ := c.RGBA()
		out.Palette[i] = img.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	}

	for y := 0; y < s.H; y++ {
		row := s.Row(y)
		dst := out.Row(y)
		for x := 0; x < s.W; x++ {
			c := color.NRGBA{R: row[x*3+0], G: row[x*3+1], B: row[x*3+2], A: 255}
			dst[x] = byte(pal.Index(c))
		}
	}
	return out, nil
}
