package gui

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerPollerStopsWhenTickReturnsFalse(t *testing.T) {
	poller := NewTickerPoller(Inline{})
	var ticks atomic.Int32

	poller.Every(time.Millisecond, func() bool {
		return ticks.Add(1) < 3
	})

	assert.Eventually(t, func() bool { return ticks.Load() == 3 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 3, ticks.Load())
}

func TestTickerPollerStopFunction(t *testing.T) {
	poller := NewTickerPoller(Inline{})
	var ticks atomic.Int32

	stop := poller.Every(time.Millisecond, func() bool {
		ticks.Add(1)
		return true
	})

	assert.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)
	stop()
	stop()

	seen := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, ticks.Load()-seen, int32(1))
}
