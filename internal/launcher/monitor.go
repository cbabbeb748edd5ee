package launcher

import (
	"time"

	"f1-race-analysis/internal/gui"
	"f1-race-analysis/internal/logger"
)

// statsEvery is how many exit checks pass between resource samples
const statsEvery = 10

// Tracked is the owner of the process handle a Monitor watches
type Tracked interface {
	Process() Process
	ClearProcess()
}

// Monitor polls a tracked process and calls restore once it has exited.
type Monitor struct {
	poller   gui.Poller
	interval time.Duration
	logger   logger.Logger
	stats    func(pid int) (Stats, error)

	stop  func()
	ticks int
}

func NewMonitor(poller gui.Poller, interval time.Duration, log logger.Logger) *Monitor {
	return &Monitor{
		poller:   poller,
		interval: interval,
		logger:   log,
		stats:    ReadStats,
	}
}

// Start begins polling, replacing any previous watch
func (m *Monitor) Start(target Tracked, restore func()) {
	m.Stop()
	m.ticks = 0
	m.stop = m.poller.Every(m.interval, func() bool {
		return m.check(target, restore)
	})
}

// Stop ends polling without restoring anything
func (m *Monitor) Stop() {
	if m.stop != nil {
		m.stop()
		m.stop = nil
	}
}

// Active reports whether a watch is in progress
func (m *Monitor) Active() bool {
	return m.stop != nil
}

func (m *Monitor) check(target Tracked, restore func()) bool {
	proc := target.Process()
	if proc == nil {
		m.stop = nil
		restore()
		return false
	}

	if proc.Running() {
		m.ticks++
		if m.ticks%statsEvery == 0 {
			m.logStats(proc.Pid())
		}
		return true
	}

	m.stop = nil
	target.ClearProcess()
	m.logger.Info("ProcessMonitor", "viewer exited", map[string]interface{}{
		"pid": proc.Pid(),
	})
	restore()
	return false
}

func (m *Monitor) logStats(pid int) {
	if m.stats == nil {
		return
	}
	stats, err := m.stats(pid)
	if err != nil {
		return
	}
	m.logger.Debug("ProcessMonitor", "viewer resource usage", map[string]interface{}{
		"pid":         pid,
		"rss_mb":      stats.RSSBytes / 1024 / 1024,
		"cpu_percent": stats.CPUPercent,
	})
}
