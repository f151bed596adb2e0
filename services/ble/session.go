package ble

import (
	"bleio-go/services/control"
	"bleio-go/services/pins"
	"bleio-go/x/logx"
)

// Session routes the events of one connection. It keeps no pin or device
// state of its own; that lives in the manager and dispatcher it was given.
type Session struct {
	pins    *pins.Manager
	ctl     *control.Dispatcher
	restart bool
}

func NewSession(pm *pins.Manager, ctl *control.Dispatcher) *Session {
	return &Session{pins: pm, ctl: ctl}
}

// RestartRequested is set once a control command asked for a restart. The
// caller restarts after sending the frames returned alongside it.
func (s *Session) RestartRequested() bool { return s.restart }

// Handle executes ev and returns the frames to send back, in order.
func (s *Session) Handle(ev Event) []Outbound {
	switch ev.Kind {
	case EventWrite, EventWriteNoResponse:
		return s.write(ev)
	case EventSubscription:
		logx.Info(tag, "subscription", "char", ev.Char.String(), "notify", ev.Notify, "indicate", ev.Indicate)
	}
	return nil
}

func (s *Session) write(ev Event) []Outbound {
	switch ev.Char {
	case CharDigital:
		n, err := s.pins.ApplyBuffer(ev.Data)
		if err != nil {
			logx.Error(tag, "pin write", "err", err)
		}
		if len(ev.Data)%2 != 0 {
			logx.Warn(tag, "odd pin buffer, trailing byte dropped", "len", len(ev.Data))
		}
		logx.Info(tag, "pins applied", "cmds", n, "claimed", s.pins.Claimed())
		return nil

	case CharControl:
		res, err := s.ctl.Handle(ev.Data)
		if err != nil {
			logx.Warn(tag, "control rejected", "err", err)
			return nil
		}
		var out []Outbound
		if res.Direct != nil {
			out = append(out, Outbound{Kind: OutSet, Char: CharControl, Data: res.Direct.Bytes()})
		}
		for _, r := range res.Notify {
			out = append(out, Outbound{Kind: OutNotify, Char: CharControl, Data: r.Bytes()})
		}
		if res.Restart {
			s.restart = true
		}
		return out
	}
	logx.Warn(tag, "write to unknown characteristic", "char", uint8(ev.Char))
	return nil
}
