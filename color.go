package graffle2svg

import (
	"fmt"
	"math"
)

// MkHex converts a color channel in [0, 1] to two lowercase hex digits.
// The value is rounded to the nearest of 256 levels; out of range input
// is clamped.
func MkHex(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	n := math.Round(v * 255)
	if n < 0 {
		n = 0
	} else if n > 255 {
		n = 255
	}
	return fmt.Sprintf("%02x", int(n))
}

// colorHex returns the rrggbb form of a Graffle color dictionary. Colors
// are either {r, g, b} or grayscale {w}; missing channels are 0.
func colorHex(c *Dict) string {
	if w, ok := c.Float("w"); ok {
		if _, hasR := c.Get("r"); !hasR {
			h := MkHex(w)
			return h + h + h
		}
	}
	r, _ := c.Float("r")
	g, _ := c.Float("g")
	b, _ := c.Float("b")
	return MkHex(r) + MkHex(g) + MkHex(b)
}
