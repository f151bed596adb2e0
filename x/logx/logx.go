// Package logx is a small leveled logger for MCU builds. Lines are built
// without fmt and written with the builtin println unless an output is set.
package logx

import (
	"io"
	"sync"

	"bleio-go/x/conv"
)

type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

var (
	mu       sync.Mutex
	out      io.Writer
	minLevel = LevelInfo
	buf      []byte
)

// SetOutput redirects log lines to w (nil restores println) and returns a
// func that restores the previous output.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	prev := out
	out = w
	mu.Unlock()
	return func() {
		mu.Lock()
		out = prev
		mu.Unlock()
	}
}

// SetLevel drops lines below l.
func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

func Info(tag, msg string, kv ...any)  { emit(LevelInfo, tag, msg, kv) }
func Warn(tag, msg string, kv ...any)  { emit(LevelWarn, tag, msg, kv) }
func Error(tag, msg string, kv ...any) { emit(LevelError, tag, msg, kv) }

func prefix(l Level) string {
	switch l {
	case LevelWarn:
		return "Warn: "
	case LevelError:
		return "Error: "
	default:
		return "Info: "
	}
}

func emit(l Level, tag, msg string, kv []any) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLevel {
		return
	}

	b := append(buf[:0], prefix(l)...)
	if tag != "" {
		b = append(b, '[')
		b = append(b, tag...)
		b = append(b, "] "...)
	}
	b = append(b, msg...)
	for i := 0; i+1 < len(kv); i += 2 {
		b = append(b, ' ')
		if k, ok := kv[i].(string); ok {
			b = append(b, k...)
		} else {
			b = append(b, '?')
		}
		b = append(b, '=')
		b = appendValue(b, kv[i+1])
	}
	buf = b

	if out == nil {
		println(string(b))
		return
	}
	b = append(b, '\n')
	buf = b
	_, _ = out.Write(b)
}

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		return append(b, "nil"...)
	case string:
		return append(b, x...)
	case error:
		return append(b, x.Error()...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return conv.AppendInt(b, int64(x))
	case int32:
		return conv.AppendInt(b, int64(x))
	case int64:
		return conv.AppendInt(b, x)
	case uint8:
		return conv.AppendUint(b, uint64(x))
	case uint16:
		return conv.AppendUint(b, uint64(x))
	case uint32:
		return conv.AppendUint(b, uint64(x))
	case uint64:
		return conv.AppendUint(b, x)
	case []byte:
		return conv.AppendHex(b, x)
	case interface{ String() string }:
		return append(b, x.String()...)
	default:
		return append(b, '?')
	}
}
