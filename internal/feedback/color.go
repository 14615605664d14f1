// Package feedback holds the color rules shared by the gun HUD and the
// transformable props. Colors are linear RGB in [0,1], no alpha.
package feedback

import "image/color"

// Intensities used by the gun for a slot's swatch.
const (
	Dim  = 0.15
	Full = 1.0
)

// Color is a linear RGB triple.
type Color struct {
	R, G, B float64
}

var (
	Black  = Color{}
	White  = Color{R: 1, G: 1, B: 1}
	Red    = Color{R: 1}
	Green  = Color{G: 1}
	Blue   = Color{B: 1}
	Orange = Color{R: 1, G: 0.5}
	Violet = Color{R: 0.5, B: 1}
	Teal   = Color{G: 1, B: 0.5}
)

// Channel lights exactly one of R, G, B (index 0, 1, 2) at the given
// intensity. Any other index yields black.
func Channel(index int, intensity float64) Color {
	switch index {
	case 0:
		return Color{R: intensity}
	case 1:
		return Color{G: intensity}
	case 2:
		return Color{B: intensity}
	}
	return Black
}

// FromPresence maps which of the three powers a prop holds to its palette
// color. Total over all eight inputs.
func FromPresence(p [3]bool) Color {
	switch p {
	case [3]bool{true, true, true}:
		return White
	case [3]bool{true, true, false}:
		return Orange
	case [3]bool{true, false, true}:
		return Violet
	case [3]bool{false, true, true}:
		return Teal
	case [3]bool{true, false, false}:
		return Red
	case [3]bool{false, true, false}:
		return Green
	case [3]bool{false, false, true}:
		return Blue
	}
	return Black
}

// RGBA converts to an opaque 8-bit color, clamping each channel.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}
