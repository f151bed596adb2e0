package ble

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"golang.org/x/time/rate"

	"bleio-go/bus"
	"bleio-go/errcode"
	"bleio-go/services/control"
	"bleio-go/services/pins"
	"bleio-go/types"
	"bleio-go/x/logx"
)

const tag = "ble"

// TopicState carries the retained lifecycle state.
var TopicState = bus.T("ble", "state")

// Config holds lifecycle options.
type Config struct {
	// Name is the advertised local name.
	Name string
	// Gated makes Idle wait for an admission signal before advertising.
	Gated bool
	// RetryInterval spaces advertise attempts after transport errors.
	RetryInterval time.Duration
}

// Lifecycle drives Idle → Advertising → Connected → Idle forever.
type Lifecycle struct {
	cfg   Config
	radio Radio
	dev   control.Device
	pins  *pins.Manager
	ctl   *control.Dispatcher
	admit <-chan struct{}
	pub   *bus.Connection

	adv   Advertisement
	state atomic.Uint32
	out   *queue.Queue
	retry *rate.Limiter
}

// New wires a lifecycle. admit may be nil when no admission input exists;
// pub may be nil when nobody watches the state.
func New(cfg Config, r Radio, dev control.Device, pm *pins.Manager, admit <-chan struct{}, pub *bus.Connection) *Lifecycle {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}
	return &Lifecycle{
		cfg:   cfg,
		radio: r,
		dev:   dev,
		pins:  pm,
		ctl:   control.NewDispatcher(dev),
		admit: admit,
		pub:   pub,
		adv:   NewAdvertisement(cfg.Name),
		out:   queue.New(),
		retry: rate.NewLimiter(rate.Every(cfg.RetryInterval), 1),
	}
}

// State is the current position. Other tasks should watch TopicState.
func (l *Lifecycle) State() State { return State(l.state.Load()) }

func (l *Lifecycle) setState(s State) {
	l.state.Store(uint32(s))
	logx.Info(tag, "state", "to", s.String())
	if l.pub != nil {
		l.pub.Publish(l.pub.NewMessage(TopicState, types.LinkState(s.String()), true))
	}
}

// Run loops until ctx ends and returns ctx.Err(). Transport failures are
// logged and the loop goes back to Idle.
func (l *Lifecycle) Run(ctx context.Context) error {
	for {
		l.setState(StateIdle)

		if l.cfg.Gated {
			logx.Info(tag, "waiting for admission")
			select {
			case <-l.admit:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		conn, err := l.advertise(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			logx.Error(tag, "advertise", "err", err)
			if werr := l.retry.Wait(ctx); werr != nil {
				return ctx.Err()
			}
			continue
		}
		if conn == nil {
			continue
		}

		l.serve(ctx, conn)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

type advResult struct {
	conn Conn
	err  error
}

// advertise returns (nil, nil) when a repeated admission signal stopped it.
func (l *Lifecycle) advertise(ctx context.Context) (Conn, error) {
	l.setState(StateAdvertising)

	actx, cancel := context.WithCancel(ctx)
	defer cancel()

	res := make(chan advResult, 1)
	go func() {
		c, err := l.radio.Advertise(actx, l.adv)
		res <- advResult{conn: c, err: err}
	}()

	r, _, w := radioFirst(ctx, res, l.admit)
	if w == wonRadio || w == wonBoth {
		// The connection wins; a press that raced it is dropped.
		admitted(l.admit)
		if r.err != nil {
			return nil, errcode.Wrap(errcode.Transport, "advertise", r.err)
		}
		return r.conn, nil
	}

	if w == wonAdmission {
		logx.Info(tag, "advertising stopped")
	}
	cancel()
	// Wait for the radio to unwind; a connection that landed meanwhile loses.
	if late := <-res; late.err == nil && late.conn != nil {
		_ = late.conn.Disconnect()
	}
	if w == wonNone {
		return nil, ctx.Err()
	}
	return nil, nil
}

func (l *Lifecycle) serve(ctx context.Context, conn Conn) {
	l.setState(StateConnected)
	sess := NewSession(l.pins, l.ctl)
	defer l.drop()

	for {
		ev, ok, w := radioFirst(ctx, conn.Events(), l.admit)
		switch w {
		case wonNone:
			_ = conn.Disconnect()
			return
		case wonAdmission:
			l.hangUp(conn)
			return
		}
		if !ok {
			logx.Warn(tag, "event stream closed")
			return
		}
		if ev.Kind == EventDisconnected {
			logx.Info(tag, "disconnected", "reason", ev.Reason)
			return
		}

		l.flush(conn, sess.Handle(ev))

		if sess.RestartRequested() {
			l.settle(conn)
			logx.Info(tag, "restarting")
			l.dev.Reset()
			return
		}

		// A press queued behind the event still ends the session.
		if w == wonBoth || admitted(l.admit) {
			l.hangUp(conn)
			return
		}
	}
}

func (l *Lifecycle) hangUp(conn Conn) {
	logx.Info(tag, "disconnecting")
	if err := conn.Disconnect(); err != nil {
		logx.Warn(tag, "disconnect", "err", err)
	}
}

const (
	settleAttempts = 50
	settleDelay    = 10 * time.Millisecond
)

// settle retries frames held by a busy link so that a restart never
// swallows the response announcing it.
func (l *Lifecycle) settle(conn Conn) {
	for i := 0; l.out.Length() > 0 && i < settleAttempts; i++ {
		time.Sleep(settleDelay)
		l.flush(conn, nil)
	}
	if n := l.out.Length(); n > 0 {
		logx.Warn(tag, "link still busy before restart", "pending", n)
	}
}

// flush queues out behind any backlog and sends as much as the link takes.
// A Busy link keeps the rest for the next event; other errors drop the frame.
func (l *Lifecycle) flush(conn Conn, out []Outbound) {
	for _, o := range out {
		l.out.Add(o)
	}
	for l.out.Length() > 0 {
		o := l.out.Peek().(Outbound)
		err := send(conn, o)
		if errcode.Of(err) == errcode.Busy {
			logx.Warn(tag, "link busy, frames held", "pending", l.out.Length())
			return
		}
		l.out.Remove()
		if err != nil {
			logx.Warn(tag, "send", "char", o.Char.String(), "err", err)
		}
	}
}

// drop discards frames still held when a session ends.
func (l *Lifecycle) drop() {
	if n := l.out.Length(); n > 0 {
		logx.Warn(tag, "dropping unsent frames", "n", n)
		for l.out.Length() > 0 {
			l.out.Remove()
		}
	}
}

func send(conn Conn, o Outbound) error {
	switch o.Kind {
	case OutNotify:
		return conn.Notify(o.Char, o.Data)
	case OutIndicate:
		return conn.Indicate(o.Char, o.Data)
	default:
		return conn.Set(o.Char, o.Data)
	}
}
