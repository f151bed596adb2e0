// cmd/pinsweep/main.go
package main

import (
	"runtime"
	"time"

	"bleio-go/internal/boards"
	"bleio-go/internal/platform"
	"bleio-go/services/pins"
	"bleio-go/x/logx"
)

// ---------- Configuration ----------

const (
	board = "microbit_v2"

	stepDelay = 150 * time.Millisecond
	dwell     = 1 * time.Second

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

// ---------- Helpers ----------

// frame builds the same two-byte write a peer sends on the digital
// characteristic.
func frame(i int, high bool) []byte {
	lv := byte(0)
	if high {
		lv = 1
	}
	return []byte{byte(i), lv}
}

// readBack compares every claimed output with want.
func readBack(m *pins.Manager, lines []pins.Line, want bool) (bad []int) {
	for _, o := range m.Snapshot() {
		if o.High != want || lines[o.Index].Get() != want {
			bad = append(bad, o.Index)
		}
	}
	return bad
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}

// ---------- Main ----------

func main() {
	time.Sleep(2 * time.Second)

	b, ok := boards.Lookup(board)
	if !ok {
		logx.Error("pinsweep", "unknown board", "board", board)
		return
	}
	plat, err := platform.Open(b)
	if err != nil {
		logx.Error("pinsweep", "platform", "err", err)
		return
	}
	pool := pins.NewPool(plat.Lines)
	pool.Reserve(b.MatrixPins...)
	m := pins.NewManager(pool)
	logx.Info("pinsweep", "start", "available", pool.Available())

	cycle := 0
	for {
		cycle++
		logx.Info("pinsweep", "cycle", "n", cycle)

		for _, level := range []bool{true, false} {
			for i := 0; i < pool.Len(); i++ {
				if _, err := m.ApplyBuffer(frame(i, level)); err != nil {
					logx.Warn("pinsweep", "apply", "index", i, "err", err)
				}
				time.Sleep(stepDelay)
			}
			time.Sleep(dwell)

			if bad := readBack(m, plat.Lines, level); len(bad) == 0 {
				logx.Info("pinsweep", "PASS", "high", level, "claimed", m.Claimed())
			} else {
				for _, i := range bad {
					logx.Error("pinsweep", "FAIL", "index", i, "high", level)
				}
			}
		}
		printMem()

		if cyclesToRun > 0 && cycle >= cyclesToRun {
			logx.Info("pinsweep", "done", "cycles", cycle)
			return
		}
	}
}
