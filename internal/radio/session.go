package radio

import (
	"sync"
	"sync/atomic"

	"bleio-go/errcode"
	"bleio-go/services/ble"
	"bleio-go/x/logx"
)

const eventBuf = 16

// session is one accepted connection. Stack callbacks push into it without
// blocking; the lifecycle drains Events.
type session struct {
	peer       string
	write      func(c ble.Characteristic, p []byte) error
	disconnect func() error

	mu     sync.Mutex
	events chan ble.Event
	closed bool

	drops atomic.Uint32
}

func newSession(write func(ble.Characteristic, []byte) error, disconnect func() error) *session {
	return &session{
		write:      write,
		disconnect: disconnect,
		events:     make(chan ble.Event, eventBuf),
	}
}

func (s *session) Events() <-chan ble.Event { return s.events }

// push queues ev; it is dropped when the session has ended or the queue is
// full.
func (s *session) push(ev ble.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.drops.Add(1)
		logx.Warn("radio", "event dropped", "kind", ev.Kind.String())
	}
}

// end delivers EventDisconnected and closes the stream. A full queue still
// closes, which the lifecycle reads as a disconnect.
func (s *session) end(reason uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- ble.Event{Kind: ble.EventDisconnected, Reason: reason}:
	default:
	}
	s.closed = true
	close(s.events)
}

func (s *session) send(op string, c ble.Characteristic, p []byte) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return &errcode.E{C: errcode.Transport, Op: op, Msg: "not connected"}
	}
	if err := s.write(c, p); err != nil {
		if isBusy(err) {
			return errcode.Busy
		}
		return errcode.Wrap(errcode.Transport, op, err)
	}
	return nil
}

// The stack stores the value and notifies subscribed centrals on every
// write, so the three kinds share one path.
func (s *session) Set(c ble.Characteristic, p []byte) error {
	return s.send("radio.set", c, p)
}
func (s *session) Notify(c ble.Characteristic, p []byte) error {
	return s.send("radio.notify", c, p)
}
func (s *session) Indicate(c ble.Characteristic, p []byte) error {
	return s.send("radio.indicate", c, p)
}

func (s *session) Disconnect() error {
	if err := s.disconnect(); err != nil {
		return errcode.Wrap(errcode.Transport, "radio.disconnect", err)
	}
	return nil
}

func (s *session) Drops() uint32 { return s.drops.Load() }
