package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1-race-analysis/internal/logger"
	"f1-race-analysis/internal/models"
)

// queueDispatcher stands in for the UI event loop: queued functions run
// only when the test drains them.
type queueDispatcher struct {
	ch chan func()
}

func newQueueDispatcher() *queueDispatcher {
	return &queueDispatcher{ch: make(chan func(), 16)}
}

func (q *queueDispatcher) Do(fn func()) {
	q.ch <- fn
}

func (q *queueDispatcher) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-q.ch:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for UI callback")
	}
}

type fakeSource struct {
	cacheErr error
	events   map[int][]models.Event
	err      error
	release  chan struct{}
	calls    chan int
}

func (f *fakeSource) EnableCache() error {
	return f.cacheErr
}

func (f *fakeSource) GetEvents(ctx context.Context, year int) ([]models.Event, error) {
	if f.calls != nil {
		f.calls <- year
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.events[year], nil
}

func sampleEvents() []models.Event {
	return []models.Event{
		{RoundNumber: 1, EventName: "Bahrain Grand Prix", Country: "Bahrain", Date: "2024-03-02"},
		{RoundNumber: 2, EventName: "Saudi Arabian Grand Prix", Country: "Saudi Arabia", Date: "2024-03-09"},
		{RoundNumber: 3, EventName: "Australian Grand Prix", Country: "Australia", Date: "2024-03-24"},
	}
}

func TestScheduleLoaderDeliversEventsInOrder(t *testing.T) {
	ui := newQueueDispatcher()
	source := &fakeSource{events: map[int][]models.Event{2024: sampleEvents()}}
	loader := NewScheduleLoader(context.Background(), source, ui, logger.NoOp{})

	var got []models.Event
	started := loader.Load(2024, func(events []models.Event) { got = events }, func(err error) {
		t.Fatalf("unexpected error: %v", err)
	})
	require.True(t, started)
	assert.True(t, loader.Loading())

	ui.runNext(t)

	assert.Equal(t, sampleEvents(), got)
	assert.False(t, loader.Loading())
}

func TestScheduleLoaderSingleFlight(t *testing.T) {
	ui := newQueueDispatcher()
	source := &fakeSource{
		events:  map[int][]models.Event{2023: sampleEvents()},
		release: make(chan struct{}),
		calls:   make(chan int, 4),
	}
	loader := NewScheduleLoader(context.Background(), source, ui, logger.NoOp{})

	results := 0
	onResult := func([]models.Event) { results++ }
	onError := func(err error) { t.Fatalf("unexpected error: %v", err) }

	require.True(t, loader.Load(2023, onResult, onError))
	assert.False(t, loader.Load(2023, onResult, onError))
	assert.False(t, loader.Load(2022, onResult, onError))

	assert.Equal(t, 2023, <-source.calls)
	close(source.release)
	ui.runNext(t)

	assert.Equal(t, 1, results)
	assert.Empty(t, source.calls, "ignored requests must not reach the source")

	// the guard is released once the in-flight fetch has delivered
	assert.True(t, loader.Load(2023, onResult, onError))
	ui.runNext(t)
	assert.Equal(t, 2, results)
}

func TestScheduleLoaderReportsErrors(t *testing.T) {
	ui := newQueueDispatcher()
	source := &fakeSource{err: errors.New("api down")}
	loader := NewScheduleLoader(context.Background(), source, ui, logger.NoOp{})

	var got error
	loader.Load(2024, func([]models.Event) { t.Fatal("unexpected result") }, func(err error) { got = err })
	ui.runNext(t)

	assert.EqualError(t, got, "api down")
	assert.False(t, loader.Loading())
}

func TestScheduleLoaderToleratesCacheFailure(t *testing.T) {
	ui := newQueueDispatcher()
	source := &fakeSource{
		cacheErr: errors.New("read-only filesystem"),
		events:   map[int][]models.Event{2024: sampleEvents()},
	}
	loader := NewScheduleLoader(context.Background(), source, ui, logger.NoOp{})

	var got []models.Event
	loader.Load(2024, func(events []models.Event) { got = events }, func(err error) {
		t.Fatalf("cache failure must not surface: %v", err)
	})
	ui.runNext(t)

	assert.Len(t, got, 3)
}
