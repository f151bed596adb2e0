// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"bleio-go/bus"
	"bleio-go/errcode"
	"bleio-go/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedBoards(t *testing.T) {
	mb, err := Load("microbit_v2")
	require.NoError(t, err)
	assert.Equal(t, "HelloRust", mb.DeviceName)
	assert.True(t, mb.Gated)
	assert.Equal(t, time.Second, mb.RetryInterval)
	assert.Equal(t, types.IndicatorConfig{Mode: "matrix", IntervalMs: 500}, mb.Indicator)

	lx, err := Load("linux")
	require.NoError(t, err)
	assert.False(t, lx.Gated)
	assert.Equal(t, "log", lx.Indicator.Mode)
}

func TestLoadUnknownBoard(t *testing.T) {
	_, err := Load("pico")
	require.Error(t, err)
	assert.ErrorIs(t, err, errcode.InvalidConfig)
}

func TestParseKeepsDefaultsForAbsentKeys(t *testing.T) {
	cfg, err := Parse([]byte("gated: true\n"))
	require.NoError(t, err)
	want := Default()
	want.Gated = true
	assert.Equal(t, want, cfg)

	empty, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), empty)
}

func TestParseRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"unknown key":    "colour: red\n",
		"unknown nested": "indicator:\n  blink: true\n",
		"bad duration":   "retry_interval: soon\n",
		"negative retry": "retry_interval: -1s\n",
		"empty name":     "device_name: \"\"\n",
		"bad mode":       "indicator:\n  mode: strobe\n",
		"zero interval":  "indicator:\n  mode: log\n  interval_ms: 0\n",
		"not a mapping":  "- 1\n- 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, errcode.InvalidConfig)
		})
	}
}

func TestParseIndicatorOffNeedsNoInterval(t *testing.T) {
	cfg, err := Parse([]byte("indicator:\n  mode: \"off\"\n  interval_ms: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.Indicator.Mode)
}

func TestService_PublishesRetainedPerKey(t *testing.T) {
	oldLookup := EmbeddedLookup
	EmbeddedLookup = func(board string) ([]byte, bool) {
		if board != "test" {
			return nil, false
		}
		return []byte("device_name: bench\nadmission:\n  debounce_ms: 7\n"), true
	}
	t.Cleanup(func() { EmbeddedLookup = oldLookup })

	cfg, err := Load("test")
	require.NoError(t, err)

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	NewService(cfg).Start(context.Background(), conn)

	// Retained messages arrive whenever the subscription lands.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))

	got := map[string]any{}
	deadline := time.After(600 * time.Millisecond)
	for len(got) < 5 {
		select {
		case m := <-sub.Channel():
			require.Equal(t, 2, m.Topic.Len())
			assert.Equal(t, configPrefix, m.Topic.At(0))
			key, ok := m.Topic.At(1).(string)
			require.True(t, ok)
			got[key] = m.Payload
		case <-deadline:
			t.Fatalf("expected 5 retained messages, got %d (%v)", len(got), got)
		}
	}

	assert.Equal(t, "bench", got["device_name"])
	assert.Equal(t, false, got["gated"])
	assert.Equal(t, time.Second, got["retry_interval"])
	assert.Equal(t, types.AdmissionConfig{DebounceMs: 7}, got["admission"])
	assert.Equal(t, Default().Indicator, got["indicator"])
}

func TestService_CancelledContextPublishesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := bus.NewBus(4)
	conn := b.NewConnection("test-cancelled")
	NewService(Default()).Start(ctx, conn)
	time.Sleep(20 * time.Millisecond)

	sub := conn.Subscribe(bus.T(configPrefix, "#"))
	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected retained message %v", m.Topic)
	case <-time.After(20 * time.Millisecond):
	}
}
