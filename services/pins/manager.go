package pins

import (
	"sort"

	"bleio-go/errcode"
)

// Output is a claimed pin driven as a digital output.
type Output struct {
	Index int
	line  Line
	high  bool
}

// OutputState is a read-only view of an Output.
type OutputState struct {
	Index    int
	Physical int
	High     bool
}

// Manager claims pins on first reference and applies commands to them.
// It is not safe for concurrent use: the connection loop is its only caller.
type Manager struct {
	pool *Pool
	outs map[int]*Output
}

func NewManager(pool *Pool) *Manager {
	return &Manager{pool: pool, outs: make(map[int]*Output)}
}

// Apply executes one command. Indices outside the pool or without a usable
// pin are ignored. A configure failure still consumes the slot; the output
// is registered anyway so the next command retries through Set.
func (m *Manager) Apply(c Command) error {
	i := int(c.Index)
	if i >= m.pool.Len() {
		return nil
	}
	if o, ok := m.outs[i]; ok {
		o.line.Set(c.High())
		o.high = c.High()
		return nil
	}
	l, ok := m.pool.Claim(i)
	if !ok {
		return nil
	}
	o := &Output{Index: i, line: l, high: c.High()}
	m.outs[i] = o
	if err := l.ConfigureOutput(o.high); err != nil {
		return &errcode.E{C: errcode.Hardware, Op: "configure_output", Err: err}
	}
	return nil
}

// ApplyBuffer decodes buf and applies every command in order, so a later
// command for the same index wins. The first error is returned after all
// commands have been applied.
func (m *Manager) ApplyBuffer(buf []byte) (applied int, err error) {
	for _, c := range Decode(buf) {
		if e := m.Apply(c); e != nil && err == nil {
			err = e
		}
		applied++
	}
	return applied, err
}

// Claimed is the registry size.
func (m *Manager) Claimed() int { return len(m.outs) }

// Level reports the last commanded level of index i, if claimed.
func (m *Manager) Level(i int) (high, ok bool) {
	o, ok := m.outs[i]
	if !ok {
		return false, false
	}
	return o.high, true
}

// Snapshot lists the registry sorted by index.
func (m *Manager) Snapshot() []OutputState {
	s := make([]OutputState, 0, len(m.outs))
	for _, o := range m.outs {
		s = append(s, OutputState{Index: o.Index, Physical: o.line.Number(), High: o.high})
	}
	sort.Slice(s, func(a, b int) bool { return s[a].Index < s[b].Index })
	return s
}
