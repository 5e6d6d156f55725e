package main

import (
	"encoding/binary"
	"fmt"
	"os"

	img "github.com/edwardgushchin/SDL-image"
)

const (
	bmpHeaderSize  = 54
	bmpPaletteSize = 256
	biRGB          = 0
)

// SaveBMP сохраняет индексированную поверхность как 8-битный BMP.
func SaveBMP(filename string, s *img.Surface) error {
	if s.Format != img.PixelFormatIndex8 {
		return fmt.Errorf("BMP: ожидается индексированная поверхность, получено %s", s.Format)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := s.W
	h := s.H
	rowSize := (w + 3) &^ 3
	dataSize := rowSize * h
	fileSize := bmpHeaderSize + bmpPaletteSize*4 + dataSize

	// Заголовок файла
	var fileHeader [14]byte
	fileHeader[0] = 'B'
	fileHeader[1] = 'M'
	binary.LittleEndian.PutUint32(fileHeader[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(fileHeader[10:], bmpHeaderSize+bmpPaletteSize*4)

	// DIB-заголовок
	var dibHeader [40]byte
	binary.LittleEndian.PutUint32(dibHeader[0:], 40)
	binary.LittleEndian.PutUint32(dibHeader[4:], uint32(w))
	binary.LittleEndian.PutUint32(dibHeader[8:], uint32(h))
	binary.LittleEndian.PutUint16(dibHeader[12:], 1)
	binary.LittleEndian.PutUint16(dibHeader[14:], 8)
	binary.LittleEndian.PutUint32(dibHeader[16:], biRGB)
	binary.LittleEndian.PutUint32(dibHeader[20:], uint32(dataSize))

	if _, err := f.Write(fileHeader[:]); err != nil {
		return err
	}
	if _, err := f.Write(dibHeader[:]); err != nil {
		return err
	}

	// Записываем палитру (256 * 4 байта: B,G,R,0) и пиксели
	for i := 0; i < bmpPaletteSize; i++ {
		var c img.Color
		if i < len(s.Palette) {
			c = s.Palette[i]
		}
		out := []byte{c.B, c.G, c.R, 0}
		if _, err := f.Write(out); err != nil {
			return err
		}
	}
	line := make([]byte, rowSize)
	for y := h - 1; y >= 0; y-- {
		copy(line, s.Row(y)[:w])
		if _, err := f.Write(line); err != nil {
			return err
		}
	}
	return nil
}
