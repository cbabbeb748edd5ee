package app

import (
	"context"

	"f1-race-analysis/internal/logger"
)

type stopper interface {
	Shutdown()
}

type closer interface {
	Close() error
}

type summarizer interface {
	Summary() map[string]interface{}
}

// Lifecycle tears the application down once, whichever of the window
// close, a signal or the end of the event loop comes first.
type Lifecycle struct {
	controller stopper
	source     closer
	cancel     context.CancelFunc
	timings    summarizer
	logger     logger.Logger
	isShutdown bool
}

func NewLifecycle(controller stopper, source closer, cancel context.CancelFunc, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		controller: controller,
		source:     source,
		cancel:     cancel,
		logger:     log,
	}
}

// SetTimings adds stage timings to the shutdown log
func (l *Lifecycle) SetTimings(timings summarizer) {
	l.timings = timings
}

func (l *Lifecycle) Shutdown() {
	if l.isShutdown {
		return
	}

	l.isShutdown = true
	l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

	if l.controller != nil {
		l.controller.Shutdown()
		l.logger.Debug("Lifecycle", "controller shutdown completed", nil)
	}

	if l.cancel != nil {
		l.cancel()
	}

	if l.source != nil {
		if err := l.source.Close(); err != nil {
			l.logger.Error("Lifecycle", err, map[string]interface{}{
				"stage": "data source",
			})
		}
	}

	var summary map[string]interface{}
	if l.timings != nil {
		summary = l.timings.Summary()
	}
	l.logger.Info("Lifecycle", "shutdown sequence completed", summary)
}
