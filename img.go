// Package img implements image loading for use with SDL, in the spirit of
// the SDL_image library. Decoders consume a seekable byte stream and
// produce a Surface: a pitch-addressed pixel buffer plus an optional
// palette for indexed formats.
package img

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated reports that the stream ended before an expected
	// quantity of bytes was available.
	ErrTruncated = errors.New("img: file truncated")

	// ErrUnsupportedFormat reports a header that decodes to an illegal or
	// unimplemented pixel layout.
	ErrUnsupportedFormat = errors.New("img: unsupported format")

	// ErrCorruptData reports a header whose row or plane geometry would
	// force reads or writes outside the allocated buffers.
	ErrCorruptData = errors.New("img: corrupt image data")

	// ErrAllocation reports that the output surface or a scratch buffer
	// could not be obtained.
	ErrAllocation = errors.New("img: cannot allocate surface")
)

// PixelFormat identifies the in-memory layout of a Surface's pixels.
type PixelFormat uint8

const (
	// PixelFormatIndex8 stores one palette index per pixel.
	PixelFormatIndex8 PixelFormat = iota
	// PixelFormatRGB24 stores three bytes per pixel, R first.
	PixelFormatRGB24
)

// BytesPerPixel returns the pixel size of the format in bytes.
func (f PixelFormat) BytesPerPixel() int {
	if f == PixelFormatRGB24 {
		return 3
	}
	return 1
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatIndex8:
		return "INDEX8"
	case PixelFormatRGB24:
		return "RGB24"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// Color is one palette entry.
type Color struct {
	R, G, B uint8
}

// Surface is a decoded image. Pixels holds H rows of Pitch bytes each;
// rows are addressed by Pitch, which may exceed W*BytesPerPixel for
// alignment. Palette is set only for indexed formats and holds at most
// 256 entries.
type Surface struct {
	Format  PixelFormat
	W, H    int
	Pitch   int
	Pixels  []byte
	Palette []Color
}

// Surfaces larger than this many pixels are refused up front, before
// the row loop can turn a hostile header into a huge allocation.
const maxSurfacePixels = 0x20000000

// NewSurface allocates a zeroed surface for the given geometry. The
// pitch is rounded up to a multiple of four bytes, matching SDL's
// scanline alignment.
func NewSurface(w, h int, format PixelFormat) (*Surface, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: invalid geometry %dx%d", ErrAllocation, w, h)
	}
	if w > maxSurfacePixels/h {
		return nil, fmt.Errorf("%w: %dx%d is too large", ErrAllocation, w, h)
	}
	pitch := (w*format.BytesPerPixel() + 3) &^ 3
	return &Surface{
		Format: format,
		W:      w,
		H:      h,
		Pitch:  pitch,
		Pixels: make([]byte, h*pitch),
	}, nil
}

// Row returns the pixel storage of row y, including any alignment
// padding past W*BytesPerPixel.
func (s *Surface) Row(y int) []byte {
	return s.Pixels[y*s.Pitch : (y+1)*s.Pitch]
}
