package colour

import (
	"fmt"
	"image/color"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// shades runs from darkest to lightest.
const shades = "@%#*+=-:."

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// ShadeRune returns an ASCII character approximating the lightness of c,
// for terminals without colour.
func ShadeRune(c RGB) byte {
	i := int(Luminance(c) * float64(len(shades)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

// PixelCell renders one pixel as a two-column cell. Fully transparent
// pixels are blank. With ansi unset the cell is an ASCII shade.
func PixelCell(c color.Color, ansi bool) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return "  "
	}
	rgb := ToRGB(n)
	if ansi {
		return ColourPreview(rgb, 2)
	}
	s := ShadeRune(rgb)
	return string([]byte{s, s})
}
