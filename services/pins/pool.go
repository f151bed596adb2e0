package pins

import "sync"

// Pool owns the logical-to-physical pin table. A nil slot is either claimed
// or permanently reserved; the two are indistinguishable to callers.
type Pool struct {
	mu    sync.Mutex
	slots []Line
}

// NewPool builds a pool from a board table. The slice is copied; nil entries
// mark indices with no usable pin.
func NewPool(lines []Line) *Pool {
	slots := make([]Line, len(lines))
	copy(slots, lines)
	return &Pool{slots: slots}
}

// Len is the declared logical range (0..Len-1), including reserved slots.
func (p *Pool) Len() int { return len(p.slots) }

// Claim moves the Line out of slot i. It reports false when i is out of
// range, reserved, or already claimed.
func (p *Pool) Claim(i int) (Line, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.slots) {
		return nil, false
	}
	l := p.slots[i]
	if l == nil {
		return nil, false
	}
	p.slots[i] = nil
	return l, true
}

// Reserve empties the given slots so they can never be claimed. Used at
// startup for pins taken by fixed board functions.
func (p *Pool) Reserve(idx ...int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, i := range idx {
		if i >= 0 && i < len(p.slots) {
			p.slots[i] = nil
		}
	}
}

// Available counts slots that can still be claimed.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, l := range p.slots {
		if l != nil {
			n++
		}
	}
	return n
}
