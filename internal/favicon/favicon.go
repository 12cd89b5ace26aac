// Package favicon draws the small site icon: a filled circle in three
// concentric shades on a transparent background.
package favicon

import (
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/favicon/internal/ico"
)

const (
	// Size is the width and height of the icon in pixels.
	Size = 16

	// OutputPath is where the generated icon is written, relative to the
	// working directory.
	OutputPath = "public/favicon-small.ico"

	centre = 8
)

// Band is the concentric ring a pixel falls in.
type Band int

const (
	BandTransparent Band = iota
	BandCore
	BandInner
	BandOuter
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandCore:
		return "core"
	case BandInner:
		return "inner"
	case BandOuter:
		return "outer"
	default:
		return "transparent"
	}
}

// bands is ordered by radius; a pixel takes the first band whose radius
// it does not exceed.
var bands = []struct {
	band   Band
	radius float64
	colour ico.BGRA
}{
	{BandCore, 3, ico.BGRA{B: 255, G: 255, R: 255, A: 255}}, // white
	{BandInner, 5, ico.BGRA{B: 250, G: 165, R: 96, A: 255}}, // light blue #60a5fa
	{BandOuter, 7, ico.BGRA{B: 175, G: 64, R: 30, A: 255}},  // dark blue #1e40af
}

// Distance returns the Euclidean distance of (x, y) from the icon centre.
func Distance(x, y int) float64 {
	dx := float64(x - centre)
	dy := float64(y - centre)
	return math.Sqrt(dx*dx + dy*dy)
}

// Classify returns the band of pixel (x, y).
func Classify(x, y int) Band {
	d := Distance(x, y)
	for _, b := range bands {
		if d <= b.radius {
			return b.band
		}
	}
	return BandTransparent
}

// Colour returns the pixel sample painted for a band. Transparent is all
// zero bytes.
func Colour(b Band) ico.BGRA {
	for _, bb := range bands {
		if bb.band == b {
			return bb.colour
		}
	}
	return ico.BGRA{}
}

// Pixels returns Size*Size samples, row by row. Row 0 is stored first,
// which the bitmap format treats as the bottom row.
func Pixels() []ico.BGRA {
	px := make([]ico.BGRA, 0, Size*Size)
	for y := range Size {
		for x := range Size {
			px = append(px, Colour(Classify(x, y)))
		}
	}
	return px
}

// Generate returns the complete icon file.
func Generate(logger hclog.Logger) []byte {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	px := Pixels()
	if logger.IsDebug() {
		counts := make(map[Band]int)
		for y := range Size {
			for x := range Size {
				counts[Classify(x, y)]++
			}
		}
		logger.Debug("synthesized pixels",
			"core", counts[BandCore],
			"inner", counts[BandInner],
			"outer", counts[BandOuter],
			"transparent", counts[BandTransparent])
	}

	data := ico.Encode(Size, Size, px)
	logger.Debug("encoded icon", "bytes", len(data))
	return data
}
