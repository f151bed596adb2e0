package ble

import "context"

// EventKind tags an inbound Event.
type EventKind uint8

const (
	EventWrite EventKind = iota
	EventWriteNoResponse
	EventSubscription
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventWrite:
		return "write"
	case EventWriteNoResponse:
		return "write_no_rsp"
	case EventSubscription:
		return "subscription"
	case EventDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event is one inbound radio event for an open connection.
type Event struct {
	Kind EventKind
	Char Characteristic
	Data []byte

	// EventSubscription
	Notify   bool
	Indicate bool

	// EventDisconnected
	Reason uint8
}

// OutboundKind selects how a frame reaches the peer.
type OutboundKind uint8

const (
	OutSet OutboundKind = iota
	OutNotify
	OutIndicate
)

// Outbound is one frame to send on a characteristic.
type Outbound struct {
	Kind OutboundKind
	Char Characteristic
	Data []byte
}

// Radio is the peripheral radio stack.
type Radio interface {
	// Advertise blocks until a central connects or ctx ends. On ctx end it
	// stops advertising and returns an errcode.Aborted error.
	Advertise(ctx context.Context, adv Advertisement) (Conn, error)
}

// Conn is one accepted connection. Events ends with EventDisconnected.
type Conn interface {
	Events() <-chan Event
	Set(c Characteristic, p []byte) error
	Notify(c Characteristic, p []byte) error
	Indicate(c Characteristic, p []byte) error
	Disconnect() error
}
