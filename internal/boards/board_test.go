package boards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicrobitTable(t *testing.T) {
	b, ok := Lookup("microbit_v2")
	require.True(t, ok)
	require.Len(t, b.Pins, 21)
	assert.Equal(t, 19, b.Mapped())
	assert.Empty(t, b.Pins[17])
	assert.Empty(t, b.Pins[18])
	assert.Equal(t, "P0_02", b.Pins[0])
	assert.Equal(t, "P1_00", b.Pins[20])
	assert.Equal(t, b.AdmissionPin, b.Pins[5])
}

func TestTablesHaveNoDuplicates(t *testing.T) {
	for _, b := range all {
		seen := map[string]int{}
		for i, p := range b.Pins {
			if p == "" {
				continue
			}
			if j, dup := seen[p]; dup {
				t.Errorf("%s: %s at %d and %d", b.Name, p, j, i)
			}
			seen[p] = i
		}
		for _, m := range b.MatrixPins {
			assert.Less(t, m, len(b.Pins), "%s matrix index", b.Name)
			assert.NotEmpty(t, b.Pins[m], "%s matrix index %d", b.Name, m)
		}
		assert.NotEmpty(t, b.AdmissionPin, b.Name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("pico")
	assert.False(t, ok)
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 5, MicrobitV2.IndexOf("P0_14"))
	assert.Equal(t, 20, MicrobitV2.IndexOf("P1_00"))
	assert.Equal(t, -1, MicrobitV2.IndexOf(""))
	assert.Equal(t, -1, MicrobitV2.IndexOf("P0_21"))
	assert.Equal(t, -1, Linux.IndexOf(Linux.AdmissionPin))
}
