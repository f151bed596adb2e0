package ble

import (
	"context"
	"sync"
	"testing"
	"time"

	"bleio-go/errcode"
	"bleio-go/services/control"
	"bleio-go/services/pins"
)

// recorder keeps a single ordered log across the fake radio and device so
// tests can assert emission-before-restart ordering.
type recorder struct {
	mu  sync.Mutex
	log []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.log = append(r.log, s)
	r.mu.Unlock()
}

func (r *recorder) entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.log...)
}

type fakeConn struct {
	rec    *recorder
	events chan Event

	mu          sync.Mutex
	sent        []Outbound
	disconnects int
	busy        int // Busy replies still to hand out
}

func newFakeConn(rec *recorder) *fakeConn {
	return &fakeConn{rec: rec, events: make(chan Event, 16)}
}

func (c *fakeConn) Events() <-chan Event { return c.events }

func (c *fakeConn) record(k OutboundKind, name string, ch Characteristic, p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy > 0 {
		c.busy--
		return errcode.Busy
	}
	c.sent = append(c.sent, Outbound{Kind: k, Char: ch, Data: append([]byte(nil), p...)})
	if c.rec != nil {
		c.rec.add(name)
	}
	return nil
}

func (c *fakeConn) Set(ch Characteristic, p []byte) error { return c.record(OutSet, "set", ch, p) }
func (c *fakeConn) Notify(ch Characteristic, p []byte) error {
	return c.record(OutNotify, "notify", ch, p)
}
func (c *fakeConn) Indicate(ch Characteristic, p []byte) error {
	return c.record(OutIndicate, "indicate", ch, p)
}

func (c *fakeConn) Disconnect() error {
	c.mu.Lock()
	c.disconnects++
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) snapshot() ([]Outbound, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Outbound(nil), c.sent...), c.disconnects
}

// fakeRadio hands out connections pushed by the test.
type fakeRadio struct {
	started chan Advertisement
	conns   chan Conn
	fail    chan error
	aborted chan struct{}
}

func newFakeRadio() *fakeRadio {
	return &fakeRadio{
		started: make(chan Advertisement, 8),
		conns:   make(chan Conn),
		fail:    make(chan error),
		aborted: make(chan struct{}, 8),
	}
}

func (r *fakeRadio) Advertise(ctx context.Context, adv Advertisement) (Conn, error) {
	r.started <- adv
	select {
	case c := <-r.conns:
		return c, nil
	case err := <-r.fail:
		return nil, err
	case <-ctx.Done():
		r.aborted <- struct{}{}
		return nil, errcode.Aborted
	}
}

type fakeDevice struct {
	rec    *recorder
	flags  []uint32
	resets chan struct{}
}

func newFakeDevice(rec *recorder) *fakeDevice {
	return &fakeDevice{rec: rec, resets: make(chan struct{}, 4)}
}

func (d *fakeDevice) SetPersistentFlag(mask uint32) error {
	d.flags = append(d.flags, mask)
	d.rec.add("flag")
	return nil
}

func (d *fakeDevice) SetName(name []byte, _ control.Permission) error {
	d.rec.add("name:" + string(name))
	return nil
}

func (d *fakeDevice) Reset() {
	d.rec.add("reset")
	d.resets <- struct{}{}
}

// fakeLine is a minimal pins.Line.
type fakeLine struct {
	n     int
	level bool
	cfg   int
}

func (l *fakeLine) Number() int                     { return l.n }
func (l *fakeLine) ConfigureOutput(high bool) error { l.cfg++; l.level = high; return nil }
func (l *fakeLine) Set(high bool)                   { l.level = high }
func (l *fakeLine) Get() bool                       { return l.level }

func testPins(n int) (*pins.Manager, []*fakeLine) {
	lines := make([]pins.Line, n)
	fakes := make([]*fakeLine, n)
	for i := range lines {
		fakes[i] = &fakeLine{n: i}
		lines[i] = fakes[i]
	}
	return pins.NewManager(pins.NewPool(lines)), fakes
}

func waitAdv(t *testing.T, r *fakeRadio) Advertisement {
	t.Helper()
	select {
	case adv := <-r.started:
		return adv
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for advertise")
		return Advertisement{}
	}
}

func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %s", what)
	}
}
