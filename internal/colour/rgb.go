// Package colour provides colour conversion and terminal rendering helpers.
package colour

import (
	"fmt"
	"image/color"
)

// RGB represents a colour in RGB colour space.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB, discarding alpha. Non-premultiplied
// colours keep their stored channels.
func ToRGB(c color.Color) RGB {
	if n, ok := c.(color.NRGBA); ok {
		return RGB{R: n.R, G: n.G, B: n.B}
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}
