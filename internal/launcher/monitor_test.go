package launcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1-race-analysis/internal/logger"
)

type trackedStub struct {
	proc    Process
	cleared int
}

func (s *trackedStub) Process() Process { return s.proc }

func (s *trackedStub) ClearProcess() {
	s.proc = nil
	s.cleared++
}

func TestMonitorRestoresAfterExit(t *testing.T) {
	poller := &manualPoller{}
	monitor := NewMonitor(poller, 500*time.Millisecond, logger.NoOp{})
	proc := newFakeProcess(7)
	target := &trackedStub{proc: proc}
	restored := 0

	monitor.Start(target, func() { restored++ })
	require.True(t, monitor.Active())

	poller.tickAll()
	assert.Zero(t, restored)

	proc.exit()
	poller.tickAll()

	assert.Equal(t, 1, restored)
	assert.Equal(t, 1, target.cleared)
	assert.Nil(t, target.proc)
	assert.False(t, monitor.Active())
	assert.Empty(t, poller.active())
}

func TestMonitorNilHandleRestores(t *testing.T) {
	poller := &manualPoller{}
	monitor := NewMonitor(poller, time.Second, logger.NoOp{})
	restored := 0

	monitor.Start(&trackedStub{}, func() { restored++ })
	poller.tickAll()

	assert.Equal(t, 1, restored)
	assert.Empty(t, poller.active())
}

func TestMonitorSamplesStatsPeriodically(t *testing.T) {
	poller := &manualPoller{}
	monitor := NewMonitor(poller, time.Second, logger.NoOp{})
	samples := 0
	monitor.stats = func(pid int) (Stats, error) {
		samples++
		assert.Equal(t, 9, pid)
		return Stats{RSSBytes: 64 << 20}, nil
	}

	monitor.Start(&trackedStub{proc: newFakeProcess(9)}, func() {})
	for i := 0; i < 2*statsEvery; i++ {
		poller.tickAll()
	}

	assert.Equal(t, 2, samples)
}

func TestMonitorStartReplacesPreviousWatch(t *testing.T) {
	poller := &manualPoller{}
	monitor := NewMonitor(poller, time.Second, logger.NoOp{})

	monitor.Start(&trackedStub{proc: newFakeProcess(1)}, func() {})
	monitor.Start(&trackedStub{proc: newFakeProcess(2)}, func() {})

	assert.Len(t, poller.active(), 1)
	monitor.Stop()
	assert.Empty(t, poller.active())
}
