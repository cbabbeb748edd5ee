package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1-race-analysis/internal/models"
)

type fakeView struct {
	yearHandler    func(int)
	eventHandler   func(models.Event)
	sessionHandler func(models.Event, models.SessionKind)

	selectedYear  int
	yearEnabled   bool
	events        []models.Event
	clears        int
	shownEvent    models.Event
	sessions      []models.SessionKind
	sessionsShown bool
	status        string
	errs          []error
}

func (v *fakeView) SetYearChangeHandler(h func(int))                          { v.yearHandler = h }
func (v *fakeView) SetEventSelectHandler(h func(models.Event))                { v.eventHandler = h }
func (v *fakeView) SetSessionHandler(h func(models.Event, models.SessionKind)) { v.sessionHandler = h }
func (v *fakeView) SetSelectedYear(year int)                                  { v.selectedYear = year }
func (v *fakeView) SetYearSelectEnabled(enabled bool)                         { v.yearEnabled = enabled }
func (v *fakeView) SetEvents(events []models.Event)                           { v.events = events }
func (v *fakeView) SetStatus(status string)                                   { v.status = status }
func (v *fakeView) HideSessions()                                             { v.sessionsShown = false }
func (v *fakeView) ShowProgress(string) func()                                { return func() {} }
func (v *fakeView) ShowError(title string, err error)                         { v.errs = append(v.errs, err) }
func (v *fakeView) ShowWarning(title, message string)                         {}
func (v *fakeView) HideWindow()                                               {}
func (v *fakeView) RestoreWindow()                                            {}

func (v *fakeView) ClearEvents() {
	v.events = nil
	v.clears++
}

func (v *fakeView) ShowSessions(event models.Event, sessions []models.SessionKind) {
	v.shownEvent = event
	v.sessions = sessions
	v.sessionsShown = true
}

type pendingLoad struct {
	year     int
	onResult func([]models.Event)
	onError  func(error)
}

type fakeSchedule struct {
	pending *pendingLoad
	years   []int
}

func (s *fakeSchedule) Loading() bool { return s.pending != nil }

func (s *fakeSchedule) Load(year int, onResult func([]models.Event), onError func(error)) bool {
	if s.pending != nil {
		return false
	}
	s.years = append(s.years, year)
	s.pending = &pendingLoad{year, onResult, onError}
	return true
}

func (s *fakeSchedule) complete(events []models.Event) {
	p := s.pending
	s.pending = nil
	p.onResult(events)
}

func (s *fakeSchedule) fail(err error) {
	p := s.pending
	s.pending = nil
	p.onError(err)
}

type fakeLauncher struct {
	requests []models.SessionRequest
	accept   bool
	shutdown bool
}

func (l *fakeLauncher) Launch(req models.SessionRequest) bool {
	l.requests = append(l.requests, req)
	return l.accept
}

func (l *fakeLauncher) Shutdown() { l.shutdown = true }

func setup() (*MainController, *fakeView, *fakeSchedule, *fakeLauncher) {
	view := &fakeView{yearEnabled: true}
	schedule := &fakeSchedule{}
	sessions := &fakeLauncher{accept: true}
	mc := NewMainController(schedule, sessions, nil, 2024)
	mc.SetMainView(view)
	return mc, view, schedule, sessions
}

func season() []models.Event {
	return []models.Event{
		{RoundNumber: 1, EventName: "Bahrain Grand Prix", Type: "conventional"},
		{RoundNumber: 5, EventName: "Chinese Grand Prix", Type: "sprint_qualifying"},
	}
}

func TestStartLoadsDefaultYear(t *testing.T) {
	mc, view, schedule, _ := setup()

	mc.Start()

	assert.Equal(t, 2024, view.selectedYear)
	assert.Equal(t, []int{2024}, schedule.years)
	assert.False(t, view.yearEnabled)
	assert.Equal(t, 1, view.clears)

	schedule.complete(season())

	assert.Equal(t, season(), view.events)
	assert.True(t, view.yearEnabled)
	assert.Equal(t, 2024, mc.Year())
}

func TestYearChangeIgnoredWhileLoading(t *testing.T) {
	mc, view, schedule, _ := setup()
	mc.Start()

	view.yearHandler(2023)

	assert.Equal(t, []int{2024}, schedule.years)
	assert.Equal(t, 1, view.clears)
	assert.Equal(t, 2024, mc.Year())
}

func TestYearChangeReloads(t *testing.T) {
	mc, view, schedule, _ := setup()
	mc.Start()
	schedule.complete(season())
	view.eventHandler(season()[0])
	require.True(t, view.sessionsShown)

	view.yearHandler(2021)

	assert.Equal(t, []int{2024, 2021}, schedule.years)
	assert.Nil(t, view.events)
	assert.False(t, view.sessionsShown)
	assert.Equal(t, 2021, mc.Year())
}

func TestScheduleErrorIsReported(t *testing.T) {
	mc, view, schedule, _ := setup()
	mc.Start()

	schedule.fail(errors.New("timeout"))

	require.Len(t, view.errs, 1)
	assert.EqualError(t, view.errs[0], "failed to load schedule: timeout")
	assert.True(t, view.yearEnabled)
	assert.False(t, schedule.Loading())
}

func TestSelectEventShowsSessions(t *testing.T) {
	_, view, _, _ := setup()

	view.eventHandler(season()[1])
	assert.Equal(t, []models.SessionKind{
		models.SessionSprintQualifying, models.SessionQualifying, models.SessionSprint, models.SessionRace,
	}, view.sessions)

	view.eventHandler(season()[0])
	assert.Equal(t, []models.SessionKind{models.SessionQualifying, models.SessionRace}, view.sessions)
	assert.Equal(t, "Bahrain Grand Prix", view.shownEvent.EventName)
}

func TestLaunchSessionUsesLoadedYear(t *testing.T) {
	mc, view, schedule, sessions := setup()
	mc.Start()
	schedule.complete(season())

	view.sessionHandler(season()[1], models.SessionSprint)

	require.Len(t, sessions.requests, 1)
	req := sessions.requests[0]
	assert.Equal(t, models.SessionRequest{Year: 2024, RoundNumber: 5, Kind: models.SessionSprint}, req)
	assert.Equal(t, "S", req.Code())
}

func TestShutdownStopsLauncher(t *testing.T) {
	mc, _, _, sessions := setup()

	mc.Shutdown()

	assert.True(t, sessions.shutdown)
}
