// services/admission/worker.go
package admission

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin is an input pin that can call a handler from interrupt context.
type IRQPin interface {
	Get() bool
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// Worker turns debounced edges on registered pins into admission signals.
// The ISR side only does a non-blocking send; debouncing happens on the
// worker goroutine.
type Worker struct {
	// Written by ISR; MUST NOT block the ISR:
	isrQ chan isrEvent
	// Consumed by the connection lifecycle:
	outQ    chan struct{}
	stopped chan struct{}

	mu     sync.Mutex
	inputs map[string]*watch

	drops uint32 // ISR drop counter
}

type isrEvent struct {
	id    string
	level bool // captured in ISR
}

type watch struct {
	id        string
	pin       IRQPin
	edge      Edge
	debounce  time.Duration
	lastLevel bool
	lastEvent time.Time
}

func New(isrBuf int) *Worker {
	if isrBuf <= 0 {
		isrBuf = 8
	}
	return &Worker{
		isrQ: make(chan isrEvent, isrBuf),
		// One pending signal is enough: repeated presses before the
		// lifecycle looks collapse into one.
		outQ:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		inputs:  map[string]*watch{},
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-w.isrQ:
				w.handleISR(ev)
			}
		}
	}()
}

// Signals delivers one value per accepted edge.
func (w *Worker) Signals() <-chan struct{} { return w.outQ }

// Register watches pin for edge. The returned func stops watching.
func (w *Worker) Register(id string, pin IRQPin, edge Edge, debounce time.Duration) (func(), error) {
	if edge == EdgeNone {
		return func() {}, nil
	}
	wh := &watch{
		id:        id,
		pin:       pin,
		edge:      edge,
		debounce:  debounce,
		lastLevel: pin.Get(),
	}

	handler := func() {
		select {
		case w.isrQ <- isrEvent{id: id, level: pin.Get()}:
		default:
			atomic.AddUint32(&w.drops, 1)
		}
	}
	if err := pin.SetIRQ(edge, handler); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.inputs[id] = wh
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		if cur, ok := w.inputs[id]; ok {
			_ = cur.pin.ClearIRQ()
			delete(w.inputs, id)
		}
		w.mu.Unlock()
	}, nil
}

func (w *Worker) handleISR(ev isrEvent) {
	w.mu.Lock()
	wh := w.inputs[ev.id]
	w.mu.Unlock()
	if wh == nil {
		return
	}
	now := time.Now()
	if !wh.lastEvent.IsZero() && now.Sub(wh.lastEvent) < wh.debounce {
		return
	}

	fire := false
	switch wh.edge {
	case EdgeBoth:
		fire = wh.lastLevel != ev.level
	case EdgeRising:
		fire = ev.level
	case EdgeFalling:
		fire = !ev.level
	}
	wh.lastLevel = ev.level
	if !fire {
		return
	}
	wh.lastEvent = now

	select {
	case w.outQ <- struct{}{}:
	default:
	}
}

func (w *Worker) Drops() uint32 { return atomic.LoadUint32(&w.drops) }
