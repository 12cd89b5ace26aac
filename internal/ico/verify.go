package ico

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"

	"github.com/jmylchreest/favicon/internal/colour"
)

// Report is the outcome of Verify.
type Report struct {
	FileSize int
	Count    int
	Entries  []EntryReport
	Problems []string
}

// EntryReport describes one directory entry and what was wrong with it.
type EntryReport struct {
	Index    int
	Format   string // "bmp" or "png"
	Width    int
	Height   int
	BitCount int
	Size     int
	Offset   int
	Opaque   int
	Problems []string
}

// OK reports whether no problems were found anywhere in the file.
func (r *Report) OK() bool {
	if len(r.Problems) > 0 {
		return false
	}
	for _, e := range r.Entries {
		if len(e.Problems) > 0 {
			return false
		}
	}
	return true
}

// Verify decodes data and checks that the directory agrees with the image
// records that follow it. Each BMP entry is also decoded independently with
// x/image/bmp and its colour channels compared against Decode's result.
// An error is returned only when data cannot be parsed at all.
func Verify(data []byte) (*Report, error) {
	f, err := parse(data)
	if err != nil {
		return nil, err
	}

	r := &Report{FileSize: len(data), Count: int(f.Header.Count)}
	if want := HeaderSize + DirEntrySize*len(f.Entries); int(f.Entries[0].ImageOffset) < want {
		r.Problems = append(r.Problems, fmt.Sprintf("first image at %d overlaps directory ending at %d", f.Entries[0].ImageOffset, want))
	}

	for i, e := range f.Entries {
		er := EntryReport{
			Index:    i,
			Width:    entryDim(e.Width),
			Height:   entryDim(e.Height),
			BitCount: int(e.BitCount),
			Size:     int(e.BytesInRes),
			Offset:   int(e.ImageOffset),
		}
		if end := er.Offset + er.Size; end > len(data) {
			er.Problems = append(er.Problems, fmt.Sprintf("data ends at %d, past end of file %d", end, len(data)))
		}

		bm := f.Images[i]
		if bm.PNG != nil {
			er.Format = "png"
			er.Problems = append(er.Problems, checkPNG(bm, er)...)
		} else {
			er.Format = "bmp"
			er.Problems = append(er.Problems, checkDIB(bm, er)...)
			for _, p := range bm.Pixels {
				if p.A != 0 {
					er.Opaque++
				}
			}
		}
		r.Entries = append(r.Entries, er)
	}
	return r, nil
}

func entryDim(b uint8) int {
	if b == 0 {
		return 256
	}
	return int(b)
}

func checkDIB(bm *Bitmap, er EntryReport) []string {
	var problems []string
	w, h := bm.Width(), bm.Height()
	if w != er.Width || h != er.Height {
		problems = append(problems, fmt.Sprintf("directory says %dx%d, bitmap is %dx%d", er.Width, er.Height, w, h))
	}
	if int(bm.Info.BitCount) != er.BitCount {
		problems = append(problems, fmt.Sprintf("directory says %d bpp, bitmap is %d bpp", er.BitCount, bm.Info.BitCount))
	}
	if len(bm.Pixels) != w*h {
		problems = append(problems, fmt.Sprintf("%d pixels for %dx%d", len(bm.Pixels), w, h))
	}
	if n := MaskLen(w, h); len(bm.Mask) != n {
		problems = append(problems, fmt.Sprintf("mask is %d bytes, want %d", len(bm.Mask), n))
	}

	record := InfoHeaderSize + len(bm.Pixels)*4
	if er.Size != record && er.Size != record+len(bm.Mask) {
		problems = append(problems, fmt.Sprintf("declared size %d, image record is %d bytes", er.Size, record))
	}

	if err := crossDecode(bm); err != nil {
		problems = append(problems, err.Error())
	}
	return problems
}

func checkPNG(bm *Bitmap, er EntryReport) []string {
	cfg, err := png.DecodeConfig(bytes.NewReader(bm.PNG))
	if err != nil {
		return []string{err.Error()}
	}
	if cfg.Width != er.Width || cfg.Height != er.Height {
		return []string{fmt.Sprintf("directory says %dx%d, png is %dx%d", er.Width, er.Height, cfg.Width, cfg.Height)}
	}
	return nil
}

// crossDecode checks bm against an independent BMP decoder. Only colour
// channels are compared: x/image/bmp ignores alpha for 40-byte headers.
func crossDecode(bm *Bitmap) error {
	raw, err := ToBMP(bm)
	if err != nil {
		return err
	}
	ref, err := bmp.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("bmp decoder rejected entry: %v", err)
	}
	own, err := bm.Image()
	if err != nil {
		return err
	}
	if ref.Bounds() != own.Bounds() {
		return fmt.Errorf("bmp decoder bounds %v, want %v", ref.Bounds(), own.Bounds())
	}
	return compareRGB(ref, own)
}

func compareRGB(ref image.Image, own *image.NRGBA) error {
	b := own.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want, got := colour.ToRGB(ref.At(x, y)), colour.ToRGB(own.NRGBAAt(x, y))
			if want != got {
				return fmt.Errorf("pixel (%d,%d) is %s, bmp decoder read %s", x, y, got.Hex(), want.Hex())
			}
		}
	}
	return nil
}
