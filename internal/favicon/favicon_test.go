package favicon

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/favicon/internal/ico"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want Band
	}{
		{"centre", 8, 8, BandCore},
		{"core edge at 3", 8, 5, BandCore},
		{"just past core", 8, 4, BandInner},
		{"inner edge at 5", 11, 12, BandInner},
		{"outer", 14, 8, BandOuter},
		{"outer edge at 7 vertical", 8, 1, BandOuter},
		{"outer edge at 7 horizontal", 1, 8, BandOuter},
		{"outer edge at 7 right", 15, 8, BandOuter},
		{"past radius at 8", 8, 0, BandTransparent},
		{"diagonal past radius", 13, 13, BandTransparent},
		{"corner", 0, 0, BandTransparent},
		{"far corner", 15, 15, BandTransparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.x, tt.y); got != tt.want {
				t.Errorf("Classify(%d, %d) = %v, want %v (distance %.3f)", tt.x, tt.y, got, tt.want, Distance(tt.x, tt.y))
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(8, 1); got != 7 {
		t.Errorf("Distance(8, 1) = %v, want exactly 7", got)
	}
	if got := Distance(11, 12); got != 5 {
		t.Errorf("Distance(11, 12) = %v, want exactly 5", got)
	}
	if got, want := Distance(0, 0), math.Sqrt(128); got != want {
		t.Errorf("Distance(0, 0) = %v, want %v", got, want)
	}
}

func TestColour(t *testing.T) {
	tests := []struct {
		band Band
		want ico.BGRA
	}{
		{BandCore, ico.BGRA{B: 255, G: 255, R: 255, A: 255}},
		{BandInner, ico.BGRA{B: 250, G: 165, R: 96, A: 255}},
		{BandOuter, ico.BGRA{B: 175, G: 64, R: 30, A: 255}},
		{BandTransparent, ico.BGRA{}},
	}

	for _, tt := range tests {
		t.Run(tt.band.String(), func(t *testing.T) {
			if got := Colour(tt.band); got != tt.want {
				t.Errorf("Colour(%v) = %+v, want %+v", tt.band, got, tt.want)
			}
		})
	}
}

func TestPixels(t *testing.T) {
	px := Pixels()
	if len(px) != Size*Size {
		t.Fatalf("Pixels() returned %d samples, want %d", len(px), Size*Size)
	}

	// Row-major: index y*Size+x.
	if got := px[1*Size+8]; got != Colour(BandOuter) {
		t.Errorf("pixel (8,1) = %+v, want outer band", got)
	}
	if got := px[0*Size+8]; got != (ico.BGRA{}) {
		t.Errorf("pixel (8,0) = %+v, want all zero", got)
	}
	if got := px[8*Size+8]; got != Colour(BandCore) {
		t.Errorf("pixel (8,8) = %+v, want core band", got)
	}
}

func TestGenerateLayout(t *testing.T) {
	data := Generate(nil)

	if len(data) != 1118 {
		t.Fatalf("Generate() returned %d bytes, want 1118", len(data))
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"reserved", uint32(le.Uint16(data[0:])), 0},
		{"type", uint32(le.Uint16(data[2:])), 1},
		{"count", uint32(le.Uint16(data[4:])), 1},
		{"entry width", uint32(data[6]), 16},
		{"entry height", uint32(data[7]), 16},
		{"entry colour count", uint32(data[8]), 0},
		{"entry reserved", uint32(data[9]), 0},
		{"entry planes", uint32(le.Uint16(data[10:])), 1},
		{"entry bit count", uint32(le.Uint16(data[12:])), 32},
		{"entry size", le.Uint32(data[14:]), 1064},
		{"entry offset", le.Uint32(data[18:]), 22},
		{"bitmap header size", le.Uint32(data[22:]), 40},
		{"bitmap width", le.Uint32(data[26:]), 16},
		{"bitmap height", le.Uint32(data[30:]), 32},
		{"bitmap planes", uint32(le.Uint16(data[34:])), 1},
		{"bitmap bit count", uint32(le.Uint16(data[36:])), 32},
		{"bitmap compression", le.Uint32(data[38:]), 0},
		{"bitmap image size", le.Uint32(data[42:]), 1024},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	for i, b := range data[46:62] {
		if b != 0 {
			t.Errorf("bitmap header byte %d = %d, want 0", 24+i, b)
		}
	}
	for i, b := range data[1118-32:] {
		if b != 0 {
			t.Errorf("mask byte %d = %#x, want 0", i, b)
		}
	}
}

// TestGenerateMatchesReference packs the file field by field and compares
// it with Generate byte for byte.
func TestGenerateMatchesReference(t *testing.T) {
	le := binary.LittleEndian
	var want []byte
	want = le.AppendUint16(want, 0)
	want = le.AppendUint16(want, 1)
	want = le.AppendUint16(want, 1)
	want = append(want, 16, 16, 0, 0)
	want = le.AppendUint16(want, 1)
	want = le.AppendUint16(want, 32)
	want = le.AppendUint32(want, 16*16*4+40)
	want = le.AppendUint32(want, 22)
	for _, v := range []uint32{40, 16, 32} {
		want = le.AppendUint32(want, v)
	}
	want = le.AppendUint16(want, 1)
	want = le.AppendUint16(want, 32)
	for _, v := range []uint32{0, 16 * 16 * 4, 0, 0, 0, 0} {
		want = le.AppendUint32(want, v)
	}
	for y := range 16 {
		for x := range 16 {
			dx, dy := float64(x-8), float64(y-8)
			dist := math.Sqrt(dx*dx + dy*dy)
			switch {
			case dist <= 3:
				want = append(want, 255, 255, 255, 255)
			case dist <= 5:
				want = append(want, 250, 165, 96, 255)
			case dist <= 7:
				want = append(want, 175, 64, 30, 255)
			default:
				want = append(want, 0, 0, 0, 0)
			}
		}
	}
	want = append(want, make([]byte, 32)...)

	if got := Generate(nil); !bytes.Equal(got, want) {
		t.Errorf("Generate() differs from reference layout (got %d bytes, want %d)", len(got), len(want))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate(nil)
	for range 3 {
		if !bytes.Equal(first, Generate(nil)) {
			t.Fatal("Generate() output changed between runs")
		}
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	f, err := ico.Decode(bytes.NewReader(Generate(nil)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(f.Images) != 1 {
		t.Fatalf("decoded %d images, want 1", len(f.Images))
	}
	if bpp := f.Images[0].Info.BitCount; bpp != 32 {
		t.Errorf("bit count = %d, want 32", bpp)
	}

	img, err := f.Images[0].Image()
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("bounds = %v, want 16x16", b)
	}

	for _, p := range [][2]int{{0, 0}, {15, 0}, {0, 15}, {15, 15}} {
		if a := img.NRGBAAt(p[0], p[1]).A; a != 0 {
			t.Errorf("corner %v alpha = %d, want 0", p, a)
		}
	}

	// Stored row 8 is image row 7 once flipped top-down.
	centre := img.NRGBAAt(8, 7)
	if centre.A != 255 || centre.R != 255 || centre.G != 255 || centre.B != 255 {
		t.Errorf("centre = %v, want opaque white", centre)
	}

	report, err := ico.Verify(Generate(nil))
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("Verify() found problems: %+v", report)
	}
}

func TestGenerateLogsBands(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "favicon",
		Output: &buf,
		Level:  hclog.Debug,
	})

	Generate(logger)

	out := buf.String()
	for _, want := range []string{"synthesized pixels", "encoded icon", "bytes=1118"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
