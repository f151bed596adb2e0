package boards

// Board describes the fixed logical→physical pin table a peer addresses.
// It must not include operating parameters; those come from config.
type Board struct {
	Name string

	// Pins maps logical index to a physical pin name understood by the
	// platform layer. "" marks an index that exists but is never claimable.
	Pins []string

	// MatrixPins are logical indices shared with the LED matrix. They are
	// reserved when the matrix indicator runs.
	MatrixPins []int

	// AdmissionPin is the physical input used as the admission button.
	AdmissionPin string
}

var all = map[string]Board{
	MicrobitV2.Name: MicrobitV2,
	Linux.Name:      Linux,
}

// Lookup returns the table for name.
func Lookup(name string) (Board, bool) {
	b, ok := all[name]
	return b, ok
}

// Mapped counts the claimable indices.
func (b Board) Mapped() int {
	n := 0
	for _, p := range b.Pins {
		if p != "" {
			n++
		}
	}
	return n
}

// IndexOf returns the logical index wired to the physical pin name, or -1.
func (b Board) IndexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, p := range b.Pins {
		if p == name {
			return i
		}
	}
	return -1
}
