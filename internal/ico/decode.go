package ico

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jmylchreest/favicon/internal/security"
)

// MaxFileSize bounds how much Decode will read. It comfortably holds a
// full set of 256x256 32-bit entries.
const MaxFileSize = 32 << 20

var (
	// ErrInvalid is returned for data that is not an icon file.
	ErrInvalid = errors.New("ico: invalid icon file")
	// ErrUnsupported is returned for valid icons using features this
	// package does not decode (palettes, compressed DIBs).
	ErrUnsupported = errors.New("ico: unsupported icon format")
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", decodeImage, decodeConfig)
}

// File is a decoded icon container.
type File struct {
	Header  Header
	Entries []DirEntry
	Images  []*Bitmap
}

// Bitmap is the payload of one directory entry. PNG entries carry PNG and
// leave the DIB fields empty.
type Bitmap struct {
	Info   BitmapInfoHeader
	Pixels []BGRA // bottom row first
	Mask   []byte
	PNG    []byte
}

// Width returns the pixel width of the bitmap.
func (b *Bitmap) Width() int {
	return int(b.Info.Width)
}

// Height returns the pixel height of the colour data, excluding the mask.
func (b *Bitmap) Height() int {
	return int(b.Info.Height) / 2
}

// Image converts the bitmap into a top-down NRGBA image.
func (b *Bitmap) Image() (*image.NRGBA, error) {
	if b.PNG != nil {
		img, err := png.Decode(bytes.NewReader(b.PNG))
		if err != nil {
			return nil, fmt.Errorf("failed to decode png entry: %w", err)
		}
		out := image.NewNRGBA(img.Bounds())
		for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
			for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
				out.Set(x, y, img.At(x, y))
			}
		}
		return out, nil
	}

	w, h := b.Width(), b.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for row := range h {
		y := h - 1 - row
		for x := range w {
			p := b.Pixels[row*w+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return img, nil
}

// Decode parses an icon file.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(security.NewLimitedReader(r, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read icon: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*File, error) {
	f := &File{}
	rd := bytes.NewReader(data)
	if err := binary.Read(rd, binary.LittleEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrInvalid)
	}
	if f.Header.Reserved != 0 || f.Header.Type != TypeIcon {
		return nil, fmt.Errorf("%w: bad magic number", ErrInvalid)
	}
	if f.Header.Count == 0 {
		return nil, fmt.Errorf("%w: no images", ErrInvalid)
	}

	f.Entries = make([]DirEntry, f.Header.Count)
	if err := binary.Read(rd, binary.LittleEndian, f.Entries); err != nil {
		return nil, fmt.Errorf("%w: short directory", ErrInvalid)
	}

	for i, e := range f.Entries {
		bm, err := parseEntry(data, e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		f.Images = append(f.Images, bm)
	}
	return f, nil
}

func parseEntry(data []byte, e DirEntry) (*Bitmap, error) {
	start := int(e.ImageOffset)
	if start < HeaderSize || start >= len(data) {
		return nil, fmt.Errorf("%w: offset %d outside file", ErrInvalid, start)
	}
	payload := data[start:]

	if bytes.HasPrefix(payload, pngSignature) {
		end := int(e.BytesInRes)
		if end > len(payload) {
			return nil, fmt.Errorf("%w: png entry overruns file", ErrInvalid)
		}
		return &Bitmap{PNG: payload[:end]}, nil
	}

	bm := &Bitmap{}
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &bm.Info); err != nil {
		return nil, fmt.Errorf("%w: short bitmap header", ErrInvalid)
	}
	if bm.Info.Size != InfoHeaderSize {
		return nil, fmt.Errorf("%w: bitmap header size %d", ErrUnsupported, bm.Info.Size)
	}
	if bm.Info.BitCount != 32 || bm.Info.Compression != compressionRGB {
		return nil, fmt.Errorf("%w: %d bpp, compression %d", ErrUnsupported, bm.Info.BitCount, bm.Info.Compression)
	}
	w, h := bm.Width(), bm.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: bitmap is %dx%d", ErrInvalid, w, h)
	}

	pix := payload[InfoHeaderSize:]
	if len(pix) < w*h*4 {
		return nil, fmt.Errorf("%w: pixel data truncated", ErrInvalid)
	}
	bm.Pixels = make([]BGRA, w*h)
	for i := range bm.Pixels {
		bm.Pixels[i] = BGRA{B: pix[i*4], G: pix[i*4+1], R: pix[i*4+2], A: pix[i*4+3]}
	}

	// Writers disagree on row padding and on whether BytesInRes counts the
	// mask, so take what is there up to the unpadded length.
	mask := pix[w*h*4:]
	if n := MaskLen(w, h); len(mask) > n {
		mask = mask[:n]
	}
	bm.Mask = mask
	return bm, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	f, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return f.Images[0].Image()
}

func decodeConfig(r io.Reader) (image.Config, error) {
	f, err := Decode(r)
	if err != nil {
		return image.Config{}, err
	}
	e := f.Entries[0]
	w, h := int(e.Width), int(e.Height)
	if w == 0 {
		w = 256
	}
	if h == 0 {
		h = 256
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: w, Height: h}, nil
}
