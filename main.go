//go:build softdevice || linux

package main

import (
	"context"
	"time"

	"bleio-go/bus"
	"bleio-go/internal/boards"
	"bleio-go/internal/platform"
	"bleio-go/internal/radio"
	"bleio-go/services/admission"
	"bleio-go/services/ble"
	"bleio-go/services/config"
	"bleio-go/services/indicator"
	"bleio-go/services/pins"
	"bleio-go/x/logx"

	"tinygo.org/x/bluetooth"
)

// halt parks the firmware after an unrecoverable boot error.
func halt(msg string, err error) {
	for {
		logx.Error("main", msg, "err", err)
		time.Sleep(5 * time.Second)
	}
}

func main() {
	// Allow the serial console to attach before we print.
	time.Sleep(2 * time.Second)
	logx.Info("main", "boot", "board", boardName)
	ctx := context.Background()

	cfg, err := config.Load(boardName)
	if err != nil {
		logx.Warn("main", "config rejected, using defaults", "err", err)
		cfg = config.Default()
	}

	b, ok := boards.Lookup(boardName)
	if !ok {
		halt("unknown board", nil)
	}
	plat, err := platform.Open(b)
	if err != nil {
		halt("platform", err)
	}

	bb := bus.NewBus(8)
	config.NewService(cfg).Start(ctx, bb.NewConnection("config"))

	pool := pins.NewPool(plat.Lines)

	displays := map[string]indicator.Display{"log": indicator.LogDisplay{}}
	if cfg.Indicator.Mode == "matrix" {
		// Matrix columns share edge connector pins.
		pool.Reserve(b.MatrixPins...)
		if d, err := plat.StartMatrix(ctx); err != nil {
			logx.Warn("main", "matrix unavailable, logging instead", "err", err)
			displays["matrix"] = indicator.LogDisplay{}
		} else {
			displays["matrix"] = d
		}
	}
	indicator.New(cfg.Indicator, displays).Start(ctx, bb.NewConnection("indicator"))

	var admit <-chan struct{}
	if plat.Button != nil {
		if i := b.IndexOf(b.AdmissionPin); i >= 0 {
			pool.Reserve(i)
		}
		w := admission.New(8)
		w.Start(ctx)
		debounce := time.Duration(cfg.Admission.DebounceMs) * time.Millisecond
		if _, err := w.Register("admission", plat.Button, admission.EdgeFalling, debounce); err != nil {
			logx.Warn("main", "admission input unavailable", "err", err)
		} else {
			admit = w.Signals()
		}
	}
	gated := cfg.Gated
	if gated && admit == nil {
		logx.Warn("main", "gated without an admission input, advertising at once")
		gated = false
	}

	r := radio.New(bluetooth.DefaultAdapter)
	if err := r.Enable(); err != nil {
		halt("radio", err)
	}

	logx.Info("main", "pins", "available", pool.Available(), "range", pool.Len())
	lc := ble.New(ble.Config{
		Name:          cfg.DeviceName,
		Gated:         gated,
		RetryInterval: cfg.RetryInterval,
	}, r, plat.Device, pins.NewManager(pool), admit, bb.NewConnection("ble"))

	_ = lc.Run(ctx)
}
