// PCX file reader:
// Supports:
//  1..4 bits/pixel in multiplanar format (1 bit/plane/pixel)
//  8 bits/pixel in single-planar format (8 bits/plane/pixel)
//  24 bits/pixel in 3-plane format (8 bits/plane/pixel)
//
// (The <8bpp formats are expanded to 8bpp surfaces)
//
// Doesn't support:
//  single-planar packed-pixel formats other than 8bpp
//  4-plane 32bpp format with a fourth "intensity" plane

package img

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	pcxHeaderSize = 128

	zSoftManufacturer   = 10
	pcPaintbrushVersion = 5

	pcxEncodingNone = 0
	pcxEncodingRLE  = 1

	pcxPaletteMarker = 0x0C
	pcxPaletteSize   = 768
)

// pcxHeader is the fixed 128-byte PCX header with its little-endian
// fields already normalized to host integers.
type pcxHeader struct {
	manufacturer byte
	version      byte
	encoding     byte
	bitsPerPixel int
	xmin, ymin   int
	xmax, ymax   int
	colormap     [48]byte
	nplanes      int
	bytesPerLine int
}

// parsePCXHeader decodes the header field by field from a 128-byte
// buffer. Field offsets follow the on-disk layout; the bounding box and
// BytesPerLine are signed 16-bit little-endian.
func parsePCXHeader(buf []byte) pcxHeader {
	s16 := func(off int) int {
		return int(int16(binary.LittleEndian.Uint16(buf[off:])))
	}
	h := pcxHeader{
		manufacturer: buf[0],
		version:      buf[1],
		encoding:     buf[2],
		bitsPerPixel: int(buf[3]),
		xmin:         s16(4),
		ymin:         s16(6),
		xmax:         s16(8),
		ymax:         s16(10),
		nplanes:      int(buf[65]),
		bytesPerLine: s16(66),
	}
	copy(h.colormap[:], buf[16:64])
	return h
}

// IsPCX reports whether the stream at its current position begins a PCX
// image. The stream position is restored before returning, whatever the
// outcome; a stream shorter than the header is simply not a PCX.
func IsPCX(src io.ReadSeeker) bool {
	if src == nil {
		return false
	}
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	var buf [pcxHeaderSize]byte
	_, err = io.ReadFull(src, buf[:])
	if _, serr := src.Seek(start, io.SeekStart); serr != nil {
		return false
	}
	if err != nil {
		return false
	}
	h := parsePCXHeader(buf[:])
	return h.manufacturer == zSoftManufacturer &&
		h.version == pcPaintbrushVersion &&
		(h.encoding == pcxEncodingRLE || h.encoding == pcxEncodingNone)
}

// pcxDecoder is a single decode session. The run-length state (count,
// value) deliberately survives row boundaries: a run that overflows one
// row's quota keeps emitting into the next row before a new control
// byte is read.
type pcxDecoder struct {
	src io.ReadSeeker
	hdr pcxHeader

	width, height int
	srcBits       int // bitsPerPixel * nplanes
	rowBytes      int // nplanes * bytesPerLine

	count int
	value byte
}

// decodeRow fills buf with the next rowBytes raw plane bytes.
func (d *pcxDecoder) decodeRow(buf []byte) error {
	if d.hdr.encoding == pcxEncodingNone {
		if _, err := io.ReadFull(d.src, buf); err != nil {
			return fmt.Errorf("%w: scanline data", ErrTruncated)
		}
		return nil
	}
	// Reads stay unbuffered so the stream offset remains valid for the
	// palette seek that follows the row loop.
	var b [1]byte
	for i := range buf {
		if d.count == 0 {
			if _, err := io.ReadFull(d.src, b[:]); err != nil {
				return fmt.Errorf("%w: scanline data", ErrTruncated)
			}
			if b[0] < 0xC0 {
				d.count = 1
				d.value = b[0]
			} else {
				d.count = int(b[0]) - 0xC0
				if _, err := io.ReadFull(d.src, b[:]); err != nil {
					return fmt.Errorf("%w: scanline data", ErrTruncated)
				}
				d.value = b[0]
			}
		}
		buf[i] = d.value
		d.count--
	}
	return nil
}

// expandBitPlanes reconstructs one row of a <=4 bit multiplanar image,
// ORing each plane's bits into one index byte per pixel. Padding bits
// past the image width are skipped, not emitted.
func (d *pcxDecoder) expandBitPlanes(row, buf []byte) {
	src := 0
	for plane := 0; plane < d.hdr.nplanes; plane++ {
		x := 0
		for j := 0; j < d.hdr.bytesPerLine; j++ {
			b := buf[src]
			src++
			for k := 7; k >= 0; k-- {
				bit := (b >> uint(k)) & 1
				if j*8+k >= d.width {
					continue
				}
				row[x] |= bit << uint(plane)
				x++
			}
		}
	}
}

// deinterlacePlanes reconstructs one row of a 3-plane 24-bit image:
// plane p supplies byte p of every 3-byte pixel. Both source and
// destination positions are validated before each write, so a header
// with a bad BytesPerLine/width combination fails instead of touching
// memory outside the row.
func (d *pcxDecoder) deinterlacePlanes(row, buf []byte) error {
	for plane := 0; plane < d.hdr.nplanes; plane++ {
		srcBase := plane * d.hdr.bytesPerLine
		dst := plane
		for x := 0; x < d.width; x++ {
			if srcBase+x >= d.rowBytes || dst >= len(row) {
				return fmt.Errorf("%w: decoding out of bounds", ErrCorruptData)
			}
			row[dst] = buf[srcBase+x]
			dst += d.hdr.nplanes
		}
	}
	return nil
}

// readPalette resolves the color table for an indexed surface. 256-color
// images carry the palette after the pixel data, prefixed by a marker
// byte; when no marker is found the last 768 bytes of the stream are
// used. Smaller depths take the header's 16-entry colormap.
func (d *pcxDecoder) readPalette() ([]Color, error) {
	nc := 1 << uint(d.srcBits)
	if nc > 256 {
		nc = 256
	}
	if d.srcBits == 8 {
		var b [1]byte
		for {
			if _, err := io.ReadFull(d.src, b[:]); err != nil {
				// Couldn't find the palette, try the end of the file.
				if _, serr := d.src.Seek(-pcxPaletteSize, io.SeekEnd); serr != nil {
					return nil, fmt.Errorf("%w: 256-color palette", ErrTruncated)
				}
				break
			}
			if b[0] == pcxPaletteMarker {
				break
			}
		}
		var colormap [pcxPaletteSize]byte
		if _, err := io.ReadFull(d.src, colormap[:]); err != nil {
			return nil, fmt.Errorf("%w: 256-color palette", ErrTruncated)
		}
		pal := make([]Color, nc)
		for i := range pal {
			pal[i] = Color{
				R: colormap[i*3+0],
				G: colormap[i*3+1],
				B: colormap[i*3+2],
			}
		}
		return pal, nil
	}
	pal := make([]Color, nc)
	for i := range pal {
		pal[i] = Color{
			R: d.hdr.colormap[i*3+0],
			G: d.hdr.colormap[i*3+1],
			B: d.hdr.colormap[i*3+2],
		}
	}
	return pal, nil
}

func (d *pcxDecoder) decode() (*Surface, error) {
	var raw [pcxHeaderSize]byte
	if _, err := io.ReadFull(d.src, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: PCX header", ErrTruncated)
	}
	d.hdr = parsePCXHeader(raw[:])
	d.width = d.hdr.xmax - d.hdr.xmin + 1
	d.height = d.hdr.ymax - d.hdr.ymin + 1
	d.srcBits = d.hdr.bitsPerPixel * d.hdr.nplanes
	d.rowBytes = d.hdr.nplanes * d.hdr.bytesPerLine

	var format PixelFormat
	switch {
	case d.hdr.bitsPerPixel == 1 && d.hdr.nplanes >= 1 && d.hdr.nplanes <= 4:
		format = PixelFormatIndex8
	case d.hdr.bitsPerPixel == 8 && d.hdr.nplanes == 1:
		format = PixelFormatIndex8
	case d.hdr.bitsPerPixel == 8 && d.hdr.nplanes == 3:
		format = PixelFormatRGB24
	default:
		return nil, fmt.Errorf("%w: PCX with %d bits/pixel and %d planes",
			ErrUnsupportedFormat, d.hdr.bitsPerPixel, d.hdr.nplanes)
	}

	surface, err := NewSurface(d.width, d.height, format)
	if err != nil {
		return nil, err
	}
	if d.rowBytes < 0 {
		return nil, fmt.Errorf("%w: negative bytes per line", ErrCorruptData)
	}

	buf := make([]byte, d.rowBytes)
	for y := 0; y < d.height; y++ {
		// Decode a scanline to the temporary buffer first.
		if err := d.decodeRow(buf); err != nil {
			return nil, err
		}
		row := surface.Row(y)
		switch {
		case d.srcBits <= 4:
			d.expandBitPlanes(row, buf)
		case d.srcBits == 8:
			n := d.width
			if n > d.rowBytes {
				n = d.rowBytes
			}
			copy(row, buf[:n])
		case d.srcBits == 24:
			if err := d.deinterlacePlanes(row, buf); err != nil {
				return nil, err
			}
		}
	}

	if format == PixelFormatIndex8 {
		pal, err := d.readPalette()
		if err != nil {
			return nil, err
		}
		surface.Palette = pal
	}
	return surface, nil
}

// LoadPCX decodes a PCX image from src into a Surface. On success the
// stream is left positioned after the consumed data; on any failure the
// stream position is restored to where it was when LoadPCX was called
// and no partial surface escapes.
func LoadPCX(src io.ReadSeeker) (*Surface, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("img: seek: %w", err)
	}
	d := &pcxDecoder{src: src}
	surface, err := d.decode()
	if err != nil {
		if _, serr := src.Seek(start, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("%w (restoring stream position also failed: %v)", err, serr)
		}
		return nil, err
	}
	return surface, nil
}
