// Package ico reads and writes the Windows ICO container format.
//
// Layout reference: https://en.wikipedia.org/wiki/ICO_(file_format)
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the size of the ICONDIR record.
	HeaderSize = 6
	// DirEntrySize is the size of one ICONDIRENTRY record.
	DirEntrySize = 16
	// InfoHeaderSize is the size of a BITMAPINFOHEADER.
	InfoHeaderSize = 40

	// TypeIcon is the image type tag for .ico files (2 is .cur).
	TypeIcon = 1

	compressionRGB = 0
)

// Header is the ICONDIR record at the start of every file.
type Header struct {
	Reserved uint16 // must be 0
	Type     uint16
	Count    uint16
}

// DirEntry describes one embedded image.
type DirEntry struct {
	Width       uint8 // 0 means 256
	Height      uint8 // 0 means 256
	ColorCount  uint8 // 0 if >= 8bpp
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32 // from start of file
}

// BitmapInfoHeader is the DIB header of a BMP-encoded entry. Height covers
// both the colour data and the opacity mask, so it is twice the image height.
type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// BGRA is one 32-bit pixel in on-disk byte order.
type BGRA struct {
	B, G, R, A uint8
}

// MaskLen returns the byte length of a 1-bit opacity mask for a w×h image.
func MaskLen(w, h int) int {
	return (w + 7) / 8 * h
}

// Encode builds a single-image icon file holding a w×h 32-bit bitmap.
// Pixels are stored in the order given, bottom row first. The opacity mask
// is written as zero bits; the alpha channel carries transparency.
func Encode(w, h int, pixels []BGRA) []byte {
	if w <= 0 || w > 256 || h <= 0 || h > 256 {
		panic(fmt.Sprintf("ico: dimensions %dx%d out of range", w, h))
	}
	if len(pixels) != w*h {
		panic(fmt.Sprintf("ico: got %d pixels for %dx%d image", len(pixels), w, h))
	}

	pixelBytes := len(pixels) * 4
	maskBytes := MaskLen(w, h)
	offset := HeaderSize + DirEntrySize

	var buf bytes.Buffer
	buf.Grow(FileLen(w, h))

	mustWrite(&buf, Header{Type: TypeIcon, Count: 1})
	mustWrite(&buf, DirEntry{
		Width:       dimByte(w),
		Height:      dimByte(h),
		Planes:      1,
		BitCount:    32,
		BytesInRes:  uint32(InfoHeaderSize + pixelBytes),
		ImageOffset: uint32(offset),
	})
	if buf.Len() != offset {
		panic(fmt.Sprintf("ico: image offset %d, wrote %d bytes of headers", offset, buf.Len()))
	}

	mustWrite(&buf, BitmapInfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(w),
		Height:      int32(h * 2),
		Planes:      1,
		BitCount:    32,
		Compression: compressionRGB,
		SizeImage:   uint32(pixelBytes),
	})
	mustWrite(&buf, pixels)
	if got := buf.Len() - offset; got != InfoHeaderSize+pixelBytes {
		panic(fmt.Sprintf("ico: declared %d image bytes, wrote %d", InfoHeaderSize+pixelBytes, got))
	}

	buf.Write(make([]byte, maskBytes))
	if buf.Len() != FileLen(w, h) {
		panic(fmt.Sprintf("ico: encoded %d bytes, want %d", buf.Len(), FileLen(w, h)))
	}
	return buf.Bytes()
}

// FileLen returns the encoded length of a single w×h 32-bit image file.
func FileLen(w, h int) int {
	return HeaderSize + DirEntrySize + InfoHeaderSize + w*h*4 + MaskLen(w, h)
}

func dimByte(n int) uint8 {
	if n >= 256 {
		return 0
	}
	return uint8(n)
}

// mustWrite encodes a fixed-size value. Writes into a bytes.Buffer only
// fail for values binary cannot size, which is a programming error.
func mustWrite(buf *bytes.Buffer, v any) {
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(fmt.Sprintf("ico: encode %T: %v", v, err))
	}
}
