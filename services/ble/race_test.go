package ble

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRadioFirstLeavesAdmissionQueued(t *testing.T) {
	radio := make(chan int, 1)
	admit := make(chan struct{}, 1)

	for i := 0; i < 100; i++ {
		radio <- i
		admit <- struct{}{}

		v, ok, w := radioFirst(context.Background(), radio, admit)
		assert.Equal(t, wonRadio, w)
		assert.True(t, ok)
		assert.Equal(t, i, v)
		assert.Len(t, admit, 1, "admission signal must stay queued")
		assert.True(t, admitted(admit))
		assert.False(t, admitted(admit))
	}
}

func TestRadioFirstAdmissionOnly(t *testing.T) {
	admit := make(chan struct{}, 1)
	admit <- struct{}{}
	_, ok, w := radioFirst(context.Background(), make(chan int), admit)
	assert.Equal(t, wonAdmission, w)
	assert.False(t, ok)
	assert.Empty(t, admit)
}

func TestRadioFirstClosedRadio(t *testing.T) {
	radio := make(chan int)
	close(radio)
	_, ok, w := radioFirst(context.Background(), radio, nil)
	assert.Equal(t, wonRadio, w)
	assert.False(t, ok)
}

func TestRadioFirstContextEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, _, w := radioFirst(ctx, make(chan int), nil)
	assert.Equal(t, wonNone, w)
}
