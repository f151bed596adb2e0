// Package platform binds a board table to real pins, the admission input,
// reset and the persistent flag.
package platform

import (
	"context"

	"bleio-go/internal/boards"
	"bleio-go/services/admission"
	"bleio-go/services/control"
	"bleio-go/services/indicator"
	"bleio-go/services/pins"
)

// Platform is what the firmware needs from the board.
type Platform struct {
	Board boards.Board

	// Lines is indexed by logical index; nil where the board has no pin.
	Lines []pins.Line

	// Button is the admission input; nil when the board has none.
	Button admission.IRQPin

	Device control.Device
}

// Open initialises the hardware for b.
func Open(b boards.Board) (*Platform, error) { return open(b) }

// StartMatrix takes over the LED matrix and returns a display refreshed
// until ctx ends. The caller must reserve Board.MatrixPins first.
func (p *Platform) StartMatrix(ctx context.Context) (indicator.Display, error) {
	return startMatrix(ctx, p)
}

// nrfPin parses "P0_02" / "P1_05" into the flat nRF pin number.
func nrfPin(name string) (int, bool) {
	if len(name) != 5 || name[0] != 'P' || name[2] != '_' {
		return 0, false
	}
	port := int(name[1] - '0')
	hi, lo := int(name[3]-'0'), int(name[4]-'0')
	if port < 0 || port > 1 || hi < 0 || hi > 9 || lo < 0 || lo > 9 {
		return 0, false
	}
	n := hi*10 + lo
	if n > 31 || (port == 1 && n > 15) {
		return 0, false
	}
	return port*32 + n, true
}
