//go:build cgo

package img

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLSurface copies the decoded image into a newly created SDL surface
// of the matching pixel format, including the palette for indexed
// surfaces. The caller owns the returned surface and must Free it.
func (s *Surface) SDLSurface() (*sdl.Surface, error) {
	var (
		format uint32
		depth  int32
	)
	switch s.Format {
	case PixelFormatIndex8:
		format, depth = sdl.PIXELFORMAT_INDEX8, 8
	case PixelFormatRGB24:
		format, depth = sdl.PIXELFORMAT_RGB24, 24
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.Format)
	}

	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(s.W), int32(s.H), depth, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}

	bpp := s.Format.BytesPerPixel()
	dst := surface.Pixels()
	for y := 0; y < s.H; y++ {
		copy(dst[y*int(surface.Pitch):], s.Pixels[y*s.Pitch:y*s.Pitch+s.W*bpp])
	}

	if len(s.Palette) > 0 {
		palette, err := sdl.AllocPalette(len(s.Palette))
		if err != nil {
			surface.Free()
			return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
		}
		colors := make([]sdl.Color, len(s.Palette))
		for i, c := range s.Palette {
			colors[i] = sdl.Color{R: c.R, G: c.G, B: c.B, A: 255}
		}
		if err := palette.SetColors(colors); err != nil {
			palette.Free()
			surface.Free()
			return nil, fmt.Errorf("img: set palette colors: %w", err)
		}
		if err := surface.SetPalette(palette); err != nil {
			palette.Free()
			surface.Free()
			return nil, fmt.Errorf("img: set surface palette: %w", err)
		}
		// The surface holds its own reference now.
		palette.Free()
	}
	return surface, nil
}
