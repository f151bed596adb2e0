package ble

// State is the lifecycle position.
type State uint8

const (
	StateIdle State = iota
	StateAdvertising
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateAdvertising:
		return "advertising"
	case StateConnected:
		return "connected"
	default:
		return "idle"
	}
}
