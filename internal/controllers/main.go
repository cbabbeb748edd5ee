package controllers

import (
	"fmt"

	"f1-race-analysis/internal/launcher"
	"f1-race-analysis/internal/logger"
	"f1-race-analysis/internal/models"
)

// View is what the controller needs from the main window
type View interface {
	launcher.Surface

	SetYearChangeHandler(handler func(int))
	SetEventSelectHandler(handler func(models.Event))
	SetSessionHandler(handler func(models.Event, models.SessionKind))

	SetSelectedYear(year int)
	SetYearSelectEnabled(enabled bool)
	SetEvents(events []models.Event)
	ClearEvents()
	ShowSessions(event models.Event, sessions []models.SessionKind)
	HideSessions()
	SetStatus(status string)
}

// ScheduleSource starts asynchronous schedule fetches
type ScheduleSource interface {
	Loading() bool
	Load(year int, onResult func([]models.Event), onError func(error)) bool
}

// SessionLauncher starts viewer processes
type SessionLauncher interface {
	Launch(req models.SessionRequest) bool
	Shutdown()
}

// MainController connects the season selector, schedule table and
// session buttons to the schedule loader and session launcher. All methods
// run on the UI goroutine.
type MainController struct {
	view     View
	schedule ScheduleSource
	launcher SessionLauncher
	logger   logger.Logger

	defaultYear int
	// year of the schedule currently shown or loading
	year int
}

// NewMainController creates a new main controller
func NewMainController(schedule ScheduleSource, sessions SessionLauncher, log logger.Logger, defaultYear int) *MainController {
	if log == nil {
		log = logger.NoOp{}
	}
	return &MainController{
		schedule:    schedule,
		launcher:    sessions,
		logger:      log,
		defaultYear: defaultYear,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.view = view
	view.SetYearChangeHandler(mc.SelectYear)
	view.SetEventSelectHandler(mc.SelectEvent)
	view.SetSessionHandler(mc.LaunchSession)
}

// Start loads the default season
func (mc *MainController) Start() {
	mc.view.SetSelectedYear(mc.defaultYear)
	mc.SelectYear(mc.defaultYear)
}

// Year returns the season whose schedule is shown
func (mc *MainController) Year() int {
	return mc.year
}

// SelectYear replaces the table with the schedule for year. Requests made
// while a schedule is still loading are ignored.
func (mc *MainController) SelectYear(year int) {
	if mc.schedule.Loading() {
		mc.logger.Debug("MainController", "schedule load in flight, year change ignored", map[string]interface{}{
			"year": year,
		})
		return
	}

	mc.view.ClearEvents()
	mc.view.HideSessions()

	started := mc.schedule.Load(year, func(events []models.Event) {
		mc.view.SetEvents(events)
		mc.view.SetYearSelectEnabled(true)
		mc.view.SetStatus(fmt.Sprintf("%d season: %d events", year, len(events)))
	}, func(err error) {
		mc.view.SetYearSelectEnabled(true)
		mc.view.SetStatus("Schedule unavailable")
		mc.view.ShowError("Error", fmt.Errorf("failed to load schedule: %w", err))
	})
	if !started {
		return
	}

	mc.year = year
	mc.view.SetYearSelectEnabled(false)
	mc.view.SetStatus(fmt.Sprintf("Loading %d schedule...", year))
}

// SelectEvent shows the sessions available for event
func (mc *MainController) SelectEvent(event models.Event) {
	sessions := models.SessionsFor(event)
	mc.view.ShowSessions(event, sessions)

	mc.logger.Debug("MainController", "event selected", map[string]interface{}{
		"round":    event.RoundNumber,
		"event":    event.EventName,
		"sessions": len(sessions),
	})
}

// LaunchSession starts the viewer for one session of event
func (mc *MainController) LaunchSession(event models.Event, kind models.SessionKind) {
	req := models.SessionRequest{
		Year:        mc.year,
		RoundNumber: event.RoundNumber,
		Kind:        kind,
	}
	if mc.launcher.Launch(req) {
		mc.view.SetStatus(fmt.Sprintf("Starting %s, %s", event.EventName, kind.Label()))
	}
}

// Shutdown stops the launcher and any running viewer
func (mc *MainController) Shutdown() {
	mc.launcher.Shutdown()
	mc.logger.Info("MainController", "shutdown completed", nil)
}
