package model

import "image/color"

// ColorPolicy decides the color of each live cell at render time. It belongs to the
// renderer; the engine never sees it.
type ColorPolicy struct {
	fixed  color.RGBA
	random RandSource
}

// FixedColor paints every live cell with c
func FixedColor(c color.RGBA) ColorPolicy {
	return ColorPolicy{fixed: c}
}

// RandomPerFrame picks an independent color for every live cell on every frame
func RandomPerFrame(rng RandSource) ColorPolicy {
	return ColorPolicy{random: rng}
}

// IsRandom reports whether the policy draws a fresh color per cell
func (p ColorPolicy) IsRandom() bool {
	return p.random != nil
}

// CellColor returns the color for the next live cell drawn
func (p ColorPolicy) CellColor() color.RGBA {
	if p.random == nil {
		return p.fixed
	}
	return color.RGBA{
		R: uint8(p.random.IntN(255)),
		G: uint8(p.random.IntN(255)),
		B: uint8(p.random.IntN(255)),
		A: 0xff,
	}
}

// xterm256 maps an RGB color onto the 6x6x6 cube of the 256-color terminal palette
func xterm256(c color.RGBA) uint8 {
	level := func(v uint8) int { return int(v) * 6 / 256 }
	return uint8(16 + 36*level(c.R) + 6*level(c.G) + level(c.B))
}
