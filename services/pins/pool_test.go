package pins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolClaimOnce(t *testing.T) {
	lines, fakes := board(3)
	p := NewPool(lines)
	require.Equal(t, 3, p.Len())

	l, ok := p.Claim(1)
	require.True(t, ok)
	assert.Same(t, fakes[1], l)

	_, ok = p.Claim(1)
	assert.False(t, ok, "second claim must fail")
	assert.Equal(t, 2, p.Available())
	assert.Equal(t, 3, p.Len(), "claiming does not shrink the declared range")
}

func TestPoolOutOfRangeAndReserved(t *testing.T) {
	lines, _ := board(4, 2)
	p := NewPool(lines)

	for _, i := range []int{-1, 2, 4, 255} {
		_, ok := p.Claim(i)
		assert.False(t, ok, "index %d", i)
	}

	p.Reserve(0, 9)
	_, ok := p.Claim(0)
	assert.False(t, ok)
	assert.Equal(t, 2, p.Available())
}

func TestPoolCopiesTable(t *testing.T) {
	lines, _ := board(2)
	p := NewPool(lines)
	lines[0] = nil
	_, ok := p.Claim(0)
	assert.True(t, ok)
}
