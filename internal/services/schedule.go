package services

import (
	"context"

	"f1-race-analysis/internal/gui"
	"f1-race-analysis/internal/logger"
	"f1-race-analysis/internal/models"
)

// EventSource provides season schedules
type EventSource interface {
	EnableCache() error
	GetEvents(ctx context.Context, year int) ([]models.Event, error)
}

// ScheduleLoader fetches a season schedule off the UI goroutine and
// allows only one fetch in flight at a time.
type ScheduleLoader struct {
	ctx    context.Context
	source EventSource
	ui     gui.Dispatcher
	logger logger.Logger

	// UI goroutine only
	loading bool
}

// NewScheduleLoader creates a schedule loader
func NewScheduleLoader(ctx context.Context, source EventSource, ui gui.Dispatcher, log logger.Logger) *ScheduleLoader {
	return &ScheduleLoader{
		ctx:    ctx,
		source: source,
		ui:     ui,
		logger: log,
	}
}

// Loading reports whether a fetch is in flight
func (l *ScheduleLoader) Loading() bool {
	return l.loading
}

// Load starts fetching the schedule for year. It returns false and does
// nothing while another fetch is in flight. Exactly one of onResult or
// onError is later invoked on the UI goroutine.
func (l *ScheduleLoader) Load(year int, onResult func([]models.Event), onError func(error)) bool {
	if l.loading {
		l.logger.Debug("ScheduleLoader", "fetch already in flight, ignoring request", map[string]interface{}{
			"year": year,
		})
		return false
	}
	l.loading = true

	l.logger.Info("ScheduleLoader", "fetching schedule", map[string]interface{}{
		"year": year,
	})

	go func() {
		if err := l.source.EnableCache(); err != nil {
			l.logger.Debug("ScheduleLoader", "cache unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}

		events, err := l.source.GetEvents(l.ctx, year)

		l.ui.Do(func() {
			l.loading = false
			if err != nil {
				l.logger.Error("ScheduleLoader", err, map[string]interface{}{
					"year": year,
				})
				onError(err)
				return
			}
			onResult(events)
		})
	}()

	return true
}
