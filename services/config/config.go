package config

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"io"
	"time"

	"bleio-go/bus"
	"bleio-go/errcode"
	"bleio-go/types"
	"bleio-go/x/logx"

	"gopkg.in/yaml.v3"
)

const (
	serviceName  = "config"
	configPrefix = "config"

	maxDeviceName = 248 // GAP device name limit; longer than fits in advertising is shortened there
)

//go:embed boards/*.yaml
var embedded embed.FS

// EmbeddedLookup allows overriding how board configs are resolved.
var EmbeddedLookup = func(board string) ([]byte, bool) {
	b, err := embedded.ReadFile("boards/" + board + ".yaml")
	if err != nil {
		return nil, false
	}
	return b, true
}

// Config holds the operating parameters for one board.
type Config struct {
	DeviceName    string                `yaml:"device_name"`
	Gated         bool                  `yaml:"gated"`
	RetryInterval time.Duration         `yaml:"retry_interval"`
	Admission     types.AdmissionConfig `yaml:"admission"`
	Indicator     types.IndicatorConfig `yaml:"indicator"`
}

// Default is applied before the YAML is decoded, so absent keys keep these.
func Default() Config {
	return Config{
		DeviceName:    "HelloRust",
		RetryInterval: time.Second,
		Admission:     types.AdmissionConfig{DebounceMs: 50},
		Indicator:     types.IndicatorConfig{Mode: "log", IntervalMs: 1000},
	}
}

// Load resolves and parses the embedded config for board.
func Load(board string) (Config, error) {
	raw, ok := EmbeddedLookup(board)
	if !ok || len(raw) == 0 {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.load", Msg: "no embedded config for board " + board}
	}
	return Parse(raw)
}

// Parse decodes raw YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errcode.Wrap(errcode.InvalidConfig, "config.parse", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: msg}
	}
	if c.DeviceName == "" || len(c.DeviceName) > maxDeviceName {
		return bad("device_name must be 1..248 bytes")
	}
	if c.RetryInterval < 0 {
		return bad("retry_interval must not be negative")
	}
	switch c.Indicator.Mode {
	case "off":
	case "log", "matrix":
		if c.Indicator.IntervalMs == 0 {
			return bad("indicator.interval_ms must be > 0")
		}
	default:
		return bad("indicator.mode must be log, matrix or off")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

// Service publishes each section of a Config retained on config/<key>.
type Service struct {
	Name string
	cfg  Config
}

func NewService(cfg Config) *Service {
	return &Service{Name: serviceName, cfg: cfg}
}

func (s *Service) publish(conn *bus.Connection) {
	for _, kv := range []struct {
		key string
		val any
	}{
		{"device_name", s.cfg.DeviceName},
		{"gated", s.cfg.Gated},
		{"retry_interval", s.cfg.RetryInterval},
		{"admission", s.cfg.Admission},
		{"indicator", s.cfg.Indicator},
	} {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, kv.key), kv.val, true))
	}
	logx.Info(serviceName, "published", "device_name", s.cfg.DeviceName)
}

// Start launches the config publisher in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if ctx.Err() != nil {
			return
		}
		s.publish(conn)
	}()
}
