package indicator

import (
	"context"
	"time"

	"bleio-go/bus"
	"bleio-go/types"
	"bleio-go/x/logx"
	"bleio-go/x/mathx"
)

var (
	topicState           = bus.T("ble", "state")
	topicConfigIndicator = bus.T("config", "indicator")
)

// Display renders the link state. phase increments once per tick.
type Display interface {
	Show(state types.LinkState, phase int)
}

// Service ticks the selected display with the latest link state. Displays
// are keyed by config mode ("log", "matrix"); "off" or a mode with no display
// renders nothing.
type Service struct {
	displays map[string]Display
	cfg      types.IndicatorConfig
}

func New(cfg types.IndicatorConfig, displays map[string]Display) *Service {
	return &Service{displays: displays, cfg: cfg}
}

const (
	minIntervalMs = 1
	maxIntervalMs = 60_000
)

func interval(cfg types.IndicatorConfig) time.Duration {
	if cfg.IntervalMs == 0 {
		return time.Second
	}
	ms := mathx.Clamp(cfg.IntervalMs, minIntervalMs, maxIntervalMs)
	return time.Duration(ms) * time.Millisecond
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	stateSub := conn.Subscribe(topicState)
	defer conn.Unsubscribe(stateSub)
	cfgSub := conn.Subscribe(topicConfigIndicator)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(interval(s.cfg))
	defer tick.Stop()

	state := types.LinkIdle
	phase := 0
	for {
		select {
		case <-ctx.Done():
			logx.Info("indicator", "stopping")
			return
		case <-tick.C:
			if d := s.displays[s.cfg.Mode]; d != nil {
				d.Show(state, phase)
			}
			phase++
		case msg := <-stateSub.Channel():
			if st, ok := msg.Payload.(types.LinkState); ok && st != state {
				state = st
				phase = 0
			}
		case msg := <-cfgSub.Channel():
			cfg, ok := msg.Payload.(types.IndicatorConfig)
			if !ok {
				logx.Warn("indicator", "ignoring config", "topic", msg.Topic.String())
				continue
			}
			if cfg.Mode != "off" {
				tick.Reset(interval(cfg))
			}
			s.cfg = cfg
			logx.Info("indicator", "config", "mode", cfg.Mode, "interval_ms", cfg.IntervalMs)
		}
	}
}

// Start the indicator service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.serviceLoop(ctx, conn)
}
