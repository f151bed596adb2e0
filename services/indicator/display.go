package indicator

import (
	"bleio-go/types"
	"bleio-go/x/logx"
)

// LogDisplay prints a heartbeat line per tick.
type LogDisplay struct{}

func (LogDisplay) Show(state types.LinkState, phase int) {
	logx.Info("indicator", "heartbeat", "state", string(state), "phase", phase)
}

// Glyph is a 5x5 bitmap, one byte per row, bit 4 is the leftmost column.
type Glyph [5]uint8

var (
	glyphDot    = Glyph{0x00, 0x00, 0x04, 0x00, 0x00}
	glyphRingIn = Glyph{0x00, 0x0e, 0x0a, 0x0e, 0x00}
	glyphRing   = Glyph{0x1f, 0x11, 0x11, 0x11, 0x1f}
	glyphTick   = Glyph{0x00, 0x01, 0x02, 0x14, 0x08}
	glyphBlank  = Glyph{}
)

// GlyphFor picks the frame for state at phase: idle blinks a dot, advertising
// pulses outward, connected shows a steady tick.
func GlyphFor(state types.LinkState, phase int) Glyph {
	switch state {
	case types.LinkAdvertising:
		switch phase % 3 {
		case 0:
			return glyphDot
		case 1:
			return glyphRingIn
		default:
			return glyphRing
		}
	case types.LinkConnected:
		return glyphTick
	default:
		if phase%2 == 0 {
			return glyphDot
		}
		return glyphBlank
	}
}

// Lit reports whether the pixel at column x, row y is on.
func (g Glyph) Lit(x, y int) bool {
	if x < 0 || x > 4 || y < 0 || y > 4 {
		return false
	}
	return g[y]&(0x10>>uint(x)) != 0
}
