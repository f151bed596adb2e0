// internal/platform/platform_linux.go
//go:build linux && !microbit_v2

package platform

import (
	"context"
	"os"
	"sync"
	"time"

	"bleio-go/errcode"
	"bleio-go/internal/boards"
	"bleio-go/services/admission"
	"bleio-go/services/control"
	"bleio-go/services/indicator"
	"bleio-go/services/pins"
	"bleio-go/x/logx"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const flagPath = "/var/lib/bleio/gpregret"

func open(b boards.Board) (*Platform, error) {
	if _, err := host.Init(); err != nil {
		return nil, errcode.Wrap(errcode.Hardware, "platform.open", err)
	}

	lines := make([]pins.Line, len(b.Pins))
	for i, name := range b.Pins {
		if name == "" {
			continue
		}
		p := gpioreg.ByName(name)
		if p == nil {
			logx.Warn("platform", "pin not found", "index", i, "name", name)
			continue
		}
		lines[i] = &periphLine{p: p}
	}

	pl := &Platform{
		Board:  b,
		Lines:  lines,
		Device: &hostDevice{flag: FlagFile{Path: flagPath}},
	}
	if b.AdmissionPin != "" {
		if p := gpioreg.ByName(b.AdmissionPin); p != nil {
			pl.Button = &periphButton{p: p}
		}
	}
	return pl, nil
}

func startMatrix(context.Context, *Platform) (indicator.Display, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "platform.matrix", Msg: "no LED matrix on linux"}
}

// ---- GPIO ----

type periphLine struct {
	p gpio.PinIO
}

func (l *periphLine) Number() int { return l.p.Number() }

func (l *periphLine) ConfigureOutput(high bool) error {
	return l.p.Out(gpio.Level(high))
}

func (l *periphLine) Set(high bool) {
	if err := l.p.Out(gpio.Level(high)); err != nil {
		logx.Warn("platform", "set failed", "pin", l.p.Name(), "err", err)
	}
}

func (l *periphLine) Get() bool { return bool(l.p.Read()) }

// ---- admission input ----

// periphButton turns periph's blocking WaitForEdge into a callback.
type periphButton struct {
	p gpio.PinIO

	mu   sync.Mutex
	stop chan struct{}
}

func (b *periphButton) Get() bool { return bool(b.p.Read()) }

func (b *periphButton) SetIRQ(edge admission.Edge, handler func()) error {
	if err := b.p.In(gpio.PullUp, toEdge(edge)); err != nil {
		return errcode.Wrap(errcode.Hardware, "button.irq", err)
	}
	stop := make(chan struct{})
	b.mu.Lock()
	b.stop = stop
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			if b.p.WaitForEdge(250 * time.Millisecond) {
				handler()
			}
		}
	}()
	return nil
}

func (b *periphButton) ClearIRQ() error {
	b.mu.Lock()
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	b.mu.Unlock()
	return b.p.In(gpio.PullNoChange, gpio.NoEdge)
}

func toEdge(e admission.Edge) gpio.Edge {
	switch e {
	case admission.EdgeRising:
		return gpio.RisingEdge
	case admission.EdgeFalling:
		return gpio.FallingEdge
	case admission.EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}

// ---- device ----

type hostDevice struct {
	flag FlagFile
}

func (d *hostDevice) SetPersistentFlag(mask uint32) error { return d.flag.SetPersistentFlag(mask) }

func (d *hostDevice) SetName([]byte, control.Permission) error { return errcode.Unsupported }

// Reset exits; the service manager starts a fresh process.
func (d *hostDevice) Reset() {
	logx.Info("platform", "restarting")
	os.Exit(0)
}
