// Package timing records how long launch stages take.
package timing

import (
	"sync"
	"time"

	"f1-race-analysis/internal/logger"
)

const (
	SessionLoad   = "session_load"
	ViewerStartup = "viewer_startup"
	ViewerRuntime = "viewer_runtime"
)

type Tracker struct {
	mu      sync.RWMutex
	timings map[string][]time.Duration
	logger  logger.Logger
	now     func() time.Time
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NoOp{}
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		logger:  log,
		now:     time.Now,
	}
}

// Start begins timing operation. The returned function records and
// returns the elapsed time; only its first call records.
func (tt *Tracker) Start(operation string) func() time.Duration {
	start := tt.now()
	var once sync.Once
	var elapsed time.Duration

	return func() time.Duration {
		once.Do(func() {
			elapsed = tt.now().Sub(start)

			tt.mu.Lock()
			tt.timings[operation] = append(tt.timings[operation], elapsed)
			tt.mu.Unlock()

			tt.logger.Debug("Timing", "operation completed", map[string]interface{}{
				"operation":   operation,
				"duration_ms": elapsed.Milliseconds(),
			})
		})
		return elapsed
	}
}

func (tt *Tracker) Timings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) Average(operation string) time.Duration {
	timings := tt.Timings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Summary returns the average of every recorded operation
func (tt *Tracker) Summary() map[string]interface{} {
	tt.mu.RLock()
	operations := make([]string, 0, len(tt.timings))
	for operation := range tt.timings {
		operations = append(operations, operation)
	}
	tt.mu.RUnlock()

	summary := make(map[string]interface{}, len(operations))
	for _, operation := range operations {
		summary[operation+"_avg_ms"] = tt.Average(operation).Milliseconds()
	}
	return summary
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
