package img

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSurfaceImagePaletted(t *testing.T) {
	s, err := NewSurface(2, 2, PixelFormatIndex8)
	require.NoError(t, err)
	s.Palette = []Color{{R: 0, G: 0, B: 0}, {R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}}
	s.Row(0)[0] = 1
	s.Row(0)[1] = 2
	s.Row(1)[0] = 2
	s.Row(1)[1] = 0

	m := s.Image()
	paletted, ok := m.(*image.Paletted)
	require.True(t, ok)
	require.Equal(t, image.Rect(0, 0, 2, 2), paletted.Bounds())
	require.Equal(t, color.RGBA{R: 255, A: 255}, paletted.At(0, 0))
	require.Equal(t, color.RGBA{G: 255, A: 255}, paletted.At(1, 0))
	require.Equal(t, color.RGBA{G: 255, A: 255}, paletted.At(0, 1))
	require.Equal(t, color.RGBA{A: 255}, paletted.At(1, 1))
}

func TestSurfaceImageNRGBA(t *testing.T) {
	s, err := NewSurface(2, 1, PixelFormatRGB24)
	require.NoError(t, err)
	copy(s.Row(0), []byte{10, 20, 30, 40, 50, 60})

	m := s.Image()
	nrgba, ok := m.(*image.NRGBA)
	require.True(t, ok)
	require.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, nrgba.At(0, 0))
	require.Equal(t, color.NRGBA{R: 40, G: 50, B: 60, A: 255}, nrgba.At(1, 0))
}
