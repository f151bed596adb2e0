package ble

import (
	"testing"

	"bleio-go/services/control"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(n int) (*Session, []*fakeLine, *fakeDevice) {
	pm, lines := testPins(n)
	dev := newFakeDevice(&recorder{})
	return NewSession(pm, control.NewDispatcher(dev)), lines, dev
}

func TestSessionRoutesDigitalWrites(t *testing.T) {
	s, lines, _ := newTestSession(3)

	out := s.Handle(Event{Kind: EventWrite, Char: CharDigital, Data: []byte{0x00, 0x01, 0x01, 0x00, 0x02, 0x01, 0x09}})
	assert.Empty(t, out)
	assert.Equal(t, []bool{true, false, true}, []bool{lines[0].level, lines[1].level, lines[2].level})
	assert.False(t, s.RestartRequested())
}

func TestSessionLaterCommandWinsWithinBuffer(t *testing.T) {
	s, lines, _ := newTestSession(1)
	s.Handle(Event{Kind: EventWriteNoResponse, Char: CharDigital, Data: []byte{0, 1, 0, 0, 0, 1, 0, 0}})
	assert.False(t, lines[0].level)
	assert.Equal(t, 1, lines[0].cfg)
}

func TestSessionControlResults(t *testing.T) {
	s, _, dev := newTestSession(1)

	out := s.Handle(Event{Kind: EventWrite, Char: CharControl, Data: []byte{0x01}})
	require.Len(t, out, 1)
	assert.Equal(t, OutNotify, out[0].Kind)
	assert.True(t, s.RestartRequested())
	assert.Empty(t, dev.resets, "session never restarts by itself")
}

func TestSessionIgnoresSubscriptionAndDisconnect(t *testing.T) {
	s, lines, _ := newTestSession(1)
	assert.Nil(t, s.Handle(Event{Kind: EventSubscription, Char: CharDigital, Notify: true}))
	assert.Nil(t, s.Handle(Event{Kind: EventDisconnected}))
	assert.Nil(t, s.Handle(Event{Kind: EventWrite, Char: Characteristic(9), Data: []byte{0, 1}}))
	assert.Zero(t, lines[0].cfg)
}
