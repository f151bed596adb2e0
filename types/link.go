package types

// LinkState is the retained value on ble/state.
type LinkState string

const (
	LinkIdle        LinkState = "idle"
	LinkAdvertising LinkState = "advertising"
	LinkConnected   LinkState = "connected"
)
