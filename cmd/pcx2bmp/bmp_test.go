package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	img "github.com/edwardgushchin/SDL-image"
)

func TestSaveBMP(t *testing.T) {
	s, err := img.NewSurface(2, 2, img.PixelFormatIndex8)
	require.NoError(t, err)
	s.Palette = []img.Color{{R: 10, G: 20, B: 30}, {R: 40, G: 50, B: 60}}
	s.Row(0)[0] = 0
	s.Row(0)[1] = 1
	s.Row(1)[0] = 1
	s.Row(1)[1] = 0

	path := filepath.Join(t.TempDir(), "out.bmp")
	require.NoError(t, SaveBMP(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rowSize := 4 // width 2 padded to a multiple of 4
	require.Len(t, data, bmpHeaderSize+bmpPaletteSize*4+rowSize*2)
	require.Equal(t, byte('B'), data[0])
	require.Equal(t, byte('M'), data[1])
	require.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[2:]))
	require.Equal(t, uint32(bmpHeaderSize+bmpPaletteSize*4), binary.LittleEndian.Uint32(data[10:]))
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[18:])) // width
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[22:])) // height
	require.Equal(t, uint16(8), binary.LittleEndian.Uint16(data[28:])) // bit count

	// Palette entries are stored B,G,R,0.
	pal := data[bmpHeaderSize:]
	require.Equal(t, []byte{30, 20, 10, 0}, pal[0:4])
	require.Equal(t, []byte{60, 50, 40, 0}, pal[4:8])

	// Pixel rows are stored bottom-up.
	pix := data[bmpHeaderSize+bmpPaletteSize*4:]
	require.Equal(t, []byte{1, 0}, pix[0:2])
	require.Equal(t, []byte{0, 1}, pix[rowSize:rowSize+2])
}

func TestSaveBMPRejectsTrueColor(t *testing.T) {
	s, err := img.NewSurface(2, 2, img.PixelFormatRGB24)
	require.NoError(t, err)
	require.Error(t, SaveBMP(filepath.Join(t.TempDir(), "out.bmp"), s))
}
