package gui

import (
	"sync"
	"sync/atomic"
	"time"
)

// Poller calls tick at a fixed interval on the UI goroutine until tick
// returns false or the returned stop function is called.
type Poller interface {
	Every(interval time.Duration, tick func() bool) (stop func())
}

// TickerPoller drives polls from a time.Ticker and marshals every tick
// through a Dispatcher.
type TickerPoller struct {
	dispatch Dispatcher
}

func NewTickerPoller(dispatch Dispatcher) *TickerPoller {
	return &TickerPoller{dispatch: dispatch}
}

func (p *TickerPoller) Every(interval time.Duration, tick func() bool) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	var (
		stopped atomic.Bool
		once    sync.Once
	)
	stop := func() {
		once.Do(func() {
			stopped.Store(true)
			ticker.Stop()
			close(done)
		})
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.dispatch.Do(func() {
					// a tick queued before stop must not run
					if stopped.Load() {
						return
					}
					if !tick() {
						stop()
					}
				})
			}
		}
	}()

	return stop
}
