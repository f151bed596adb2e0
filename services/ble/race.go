package ble

import "context"

type winner uint8

const (
	wonNone      winner = iota // ctx ended
	wonRadio                   // radio value; admit untouched
	wonAdmission               // admission signal consumed, no radio value
	wonBoth                    // admission consumed while a radio value was ready too
)

// radioFirst waits for whichever of radio and admit is ready first. A radio
// value that is already ready is taken without touching admit, so a pending
// admission signal stays queued for the caller. When the admission signal is
// taken and a radio value turns out to be ready as well, both are reported
// with wonBoth and the caller decides which one counts.
func radioFirst[T any](ctx context.Context, radio <-chan T, admit <-chan struct{}) (v T, ok bool, w winner) {
	select {
	case v, ok = <-radio:
		return v, ok, wonRadio
	default:
	}
	select {
	case v, ok = <-radio:
		return v, ok, wonRadio
	case <-admit:
		select {
		case v, ok = <-radio:
			return v, ok, wonBoth
		default:
		}
		return v, false, wonAdmission
	case <-ctx.Done():
		return v, false, wonNone
	}
}

// admitted consumes a pending admission signal, if any.
func admitted(admit <-chan struct{}) bool {
	select {
	case <-admit:
		return true
	default:
		return false
	}
}
