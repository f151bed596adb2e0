package pins

import "errors"

// fakeLine records configuration and level changes.
type fakeLine struct {
	n          int
	configured int
	level      bool
	sets       int
	failCfg    bool
}

func (l *fakeLine) Number() int { return l.n }
func (l *fakeLine) ConfigureOutput(high bool) error {
	l.configured++
	l.level = high
	if l.failCfg {
		return errors.New("gpio fault")
	}
	return nil
}
func (l *fakeLine) Set(high bool) { l.sets++; l.level = high }
func (l *fakeLine) Get() bool     { return l.level }

// board builds n fake lines; indices in reserved are left nil.
func board(n int, reserved ...int) ([]Line, []*fakeLine) {
	lines := make([]Line, n)
	fakes := make([]*fakeLine, n)
	skip := map[int]bool{}
	for _, r := range reserved {
		skip[r] = true
	}
	for i := range lines {
		if skip[i] {
			continue
		}
		f := &fakeLine{n: 100 + i}
		fakes[i] = f
		lines[i] = f
	}
	return lines, fakes
}
