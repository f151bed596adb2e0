// internal/platform/platform_microbit.go
//go:build microbit_v2

package platform

import (
	"context"
	"device/arm"
	"device/nrf"
	"image/color"
	"machine"
	"sync"
	"time"

	"bleio-go/errcode"
	"bleio-go/internal/boards"
	"bleio-go/services/admission"
	"bleio-go/services/control"
	"bleio-go/services/indicator"
	"bleio-go/services/pins"
	"bleio-go/types"

	"tinygo.org/x/drivers/microbitmatrix"
)

func open(b boards.Board) (*Platform, error) {
	lines := make([]pins.Line, len(b.Pins))
	for i, name := range b.Pins {
		if name == "" {
			continue
		}
		n, ok := nrfPin(name)
		if !ok {
			return nil, &errcode.E{C: errcode.InvalidConfig, Op: "platform.open", Msg: "bad pin " + name}
		}
		lines[i] = &nrfLine{p: machine.Pin(n), n: n}
	}

	pl := &Platform{Board: b, Lines: lines, Device: nrfDevice{}}
	if n, ok := nrfPin(b.AdmissionPin); ok {
		pl.Button = &nrfLine{p: machine.Pin(n), n: n}
	}
	return pl, nil
}

// ---- GPIO (includes IRQ support) ----

type nrfLine struct {
	p machine.Pin
	n int
}

func (l *nrfLine) Number() int { return l.n }

func (l *nrfLine) ConfigureOutput(high bool) error {
	l.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l.p.Set(high)
	return nil
}

func (l *nrfLine) Set(high bool) { l.p.Set(high) }
func (l *nrfLine) Get() bool     { return l.p.Get() }

// SetIRQ configures the pin as a pulled-up input and attaches handler via
// GPIOTE.
func (l *nrfLine) SetIRQ(edge admission.Edge, handler func()) error {
	l.p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return l.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (l *nrfLine) ClearIRQ() error {
	var zero machine.PinChange
	return l.p.SetInterrupt(zero, nil)
}

func toPinChange(e admission.Edge) machine.PinChange {
	switch e {
	case admission.EdgeRising:
		return machine.PinRising
	case admission.EdgeFalling:
		return machine.PinFalling
	case admission.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}

// ---- device ----

type nrfDevice struct{}

// GPREGRET survives a soft reset; the bootloader reads it at boot.
func (nrfDevice) SetPersistentFlag(mask uint32) error {
	nrf.POWER.GPREGRET.SetBits(mask)
	return nil
}

// The SoftDevice name is fixed when the stack is enabled.
func (nrfDevice) SetName([]byte, control.Permission) error { return errcode.Unsupported }

func (nrfDevice) Reset() { arm.SystemReset() }

// ---- LED matrix ----

var ledOn = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type matrixDisplay struct {
	mu  sync.Mutex
	dev microbitmatrix.Device
}

func startMatrix(ctx context.Context, _ *Platform) (indicator.Display, error) {
	m := &matrixDisplay{dev: microbitmatrix.New()}
	m.dev.Configure(microbitmatrix.Config{})
	m.dev.ClearDisplay()

	// The matrix is multiplexed: it only shows while it is scanned.
	go func() {
		for ctx.Err() == nil {
			m.mu.Lock()
			_ = m.dev.Display()
			m.mu.Unlock()
			time.Sleep(time.Millisecond)
		}
		m.mu.Lock()
		m.dev.ClearDisplay()
		m.mu.Unlock()
	}()
	return m, nil
}

func (m *matrixDisplay) Show(state types.LinkState, phase int) {
	g := indicator.GlyphFor(state, phase)
	m.mu.Lock()
	defer m.mu.Unlock()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			c := color.RGBA{}
			if g.Lit(x, y) {
				c = ledOn
			}
			m.dev.SetPixel(int16(x), int16(y), c)
		}
	}
}
