package img

import (
	"image"
	"image/color"
)

// Image converts the surface to a standard library image: an
// *image.Paletted for indexed surfaces, an *image.NRGBA for true color.
// Pixel data is copied, so the returned image is independent of the
// surface.
func (s *Surface) Image() image.Image {
	bounds := image.Rect(0, 0, s.W, s.H)
	switch s.Format {
	case PixelFormatIndex8:
		pal := make(color.Palette, len(s.Palette))
		for i, c := range s.Palette {
			pal[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
		dst := image.NewPaletted(bounds, pal)
		for y := 0; y < s.H; y++ {
			copy(dst.Pix[y*dst.Stride:], s.Pixels[y*s.Pitch:y*s.Pitch+s.W])
		}
		return dst
	case PixelFormatRGB24:
		dst := image.NewNRGBA(bounds)
		for y := 0; y < s.H; y++ {
			row := s.Row(y)
			for x := 0; x < s.W; x++ {
				o := y*dst.Stride + x*4
				dst.Pix[o+0] = row[x*3+0]
				dst.Pix[o+1] = row[x*3+1]
				dst.Pix[o+2] = row[x*3+2]
				dst.Pix[o+3] = 255
			}
		}
		return dst
	}
	return nil
}
