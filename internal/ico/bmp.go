package ico

import (
	"bytes"
	"fmt"
)

const bmpFileHeaderSize = 14

type bmpFileHeader struct {
	ID         [2]byte // "BM"
	FileSize   uint32
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32
}

// ToBMP rewraps a DIB entry as a standalone BMP file: a BITMAPFILEHEADER is
// prepended, the height no longer counts the mask, and the mask is dropped.
func ToBMP(b *Bitmap) ([]byte, error) {
	if b.PNG != nil {
		return nil, fmt.Errorf("%w: png entry has no bitmap", ErrUnsupported)
	}

	pixelBytes := len(b.Pixels) * 4
	info := b.Info
	info.Height = int32(b.Height())
	info.SizeImage = uint32(pixelBytes)

	var buf bytes.Buffer
	mustWrite(&buf, bmpFileHeader{
		ID:         [2]byte{'B', 'M'},
		FileSize:   uint32(bmpFileHeaderSize + InfoHeaderSize + pixelBytes),
		DataOffset: bmpFileHeaderSize + InfoHeaderSize,
	})
	mustWrite(&buf, info)
	mustWrite(&buf, b.Pixels)
	return buf.Bytes(), nil
}
