package views

import (
	"image/color"
	"strconv"

	"f1-race-analysis/internal/models"
	"f1-race-analysis/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Metadata is the branding shown in the window
type Metadata struct {
	AppName string
	Version string
	Seasons []int
}

// MainView is the race selection window. Its methods must be called on
// the UI goroutine.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container

	yearSelect   *widget.Select
	schedule     *components.ScheduleTable
	sessionPanel *components.SessionPanel
	statusBar    *components.StatusBar
	progress     *components.ProgressDialog

	yearChangeHandler func(int)
}

// NewMainView creates the view and sets it as the window content
func NewMainView(window fyne.Window, meta Metadata) *MainView {
	mv := &MainView{
		window: window,
	}

	mv.initializeComponents(meta)
	mv.buildLayout()

	return mv
}

func (mv *MainView) initializeComponents(meta Metadata) {
	options := make([]string, 0, len(meta.Seasons))
	for _, year := range meta.Seasons {
		options = append(options, strconv.Itoa(year))
	}
	mv.yearSelect = widget.NewSelect(options, mv.onYearSelected)

	mv.schedule = components.NewScheduleTable()
	mv.sessionPanel = components.NewSessionPanel()
	mv.statusBar = components.NewStatusBar(meta.AppName, meta.Version)
}

func (mv *MainView) buildLayout() {
	yearRow := container.NewHBox(
		widget.NewLabelWithStyle("Select Season:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWrap(fyne.NewSize(120, mv.yearSelect.MinSize().Height), mv.yearSelect),
	)

	split := container.NewBorder(nil, nil, nil,
		mv.sessionPanel.GetContainer(),
		mv.schedule.Widget(),
	)

	content := container.NewPadded(container.NewBorder(yearRow, nil, nil, nil, split))

	mv.mainContainer = container.NewBorder(
		buildNavBar(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		content,
	)

	mv.window.SetContent(mv.mainContainer)
}

func buildNavBar() fyne.CanvasObject {
	brand := canvas.NewText("F1", components.F1Red)
	brand.TextSize = 24
	brand.TextStyle = fyne.TextStyle{Bold: true}

	title := canvas.NewText("Race Analysis", color.White)
	title.TextSize = 20
	title.TextStyle = fyne.TextStyle{Bold: true}

	underline := canvas.NewRectangle(components.F1Red)
	underline.SetMinSize(fyne.NewSize(0, 3))

	background := canvas.NewRectangle(color.NRGBA{R: 0x15, G: 0x15, B: 0x15, A: 0xff})

	return container.NewBorder(nil, underline, nil, nil,
		container.NewStack(background, container.NewPadded(container.NewHBox(brand, title))))
}

func (mv *MainView) onYearSelected(value string) {
	year, err := strconv.Atoi(value)
	if err != nil || mv.yearChangeHandler == nil {
		return
	}
	mv.yearChangeHandler(year)
}

// Event handler setters - called by controller

// SetYearChangeHandler sets the handler for season changes
func (mv *MainView) SetYearChangeHandler(handler func(int)) {
	mv.yearChangeHandler = handler
}

// SetEventSelectHandler sets the handler for schedule row selection
func (mv *MainView) SetEventSelectHandler(handler func(models.Event)) {
	mv.schedule.SetSelectHandler(handler)
}

// SetSessionHandler sets the handler for session buttons
func (mv *MainView) SetSessionHandler(handler func(models.Event, models.SessionKind)) {
	mv.sessionPanel.SetLaunchHandler(handler)
}

// UI update methods - called by controller

// SetSelectedYear selects year in the season selector without
// notifying the year change handler
func (mv *MainView) SetSelectedYear(year int) {
	handler := mv.yearChangeHandler
	mv.yearChangeHandler = nil
	mv.yearSelect.SetSelected(strconv.Itoa(year))
	mv.yearChangeHandler = handler
}

// SetYearSelectEnabled enables or disables the season selector
func (mv *MainView) SetYearSelectEnabled(enabled bool) {
	if enabled {
		mv.yearSelect.Enable()
	} else {
		mv.yearSelect.Disable()
	}
}

// SetEvents fills the schedule table. Any previous selection is dropped.
func (mv *MainView) SetEvents(events []models.Event) {
	mv.sessionPanel.Hide()
	mv.schedule.SetEvents(events)
}

// ClearEvents empties the schedule table and hides the session panel
func (mv *MainView) ClearEvents() {
	mv.sessionPanel.Hide()
	mv.schedule.Clear()
}

// ShowSessions shows one button per session of event
func (mv *MainView) ShowSessions(event models.Event, sessions []models.SessionKind) {
	mv.sessionPanel.Show(event, sessions)
}

// HideSessions hides the session panel
func (mv *MainView) HideSessions() {
	mv.sessionPanel.Hide()
}

// SetStatus updates the footer status
func (mv *MainView) SetStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// ShowProgress opens the modal loading dialog and returns its close function
func (mv *MainView) ShowProgress(message string) func() {
	if mv.progress != nil {
		mv.progress.Close()
	}
	pd := components.NewProgressDialog("Loading", message, mv.window)
	mv.progress = pd
	pd.Show()

	return func() {
		pd.Close()
		if mv.progress == pd {
			mv.progress = nil
		}
	}
}

// ShowError displays err in a dialog titled title
func (mv *MainView) ShowError(title string, err error) {
	message := widget.NewLabel(err.Error())
	content := container.NewHBox(widget.NewIcon(theme.ErrorIcon()), message)
	dialog.NewCustom(title, "OK", content, mv.window).Show()
}

// ShowWarning displays an information dialog
func (mv *MainView) ShowWarning(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// HideWindow hides the main window
func (mv *MainView) HideWindow() {
	mv.window.Hide()
}

// RestoreWindow shows, raises and focuses the main window
func (mv *MainView) RestoreWindow() {
	mv.window.Show()
	mv.window.RequestFocus()
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}

// Schedule exposes the schedule table
func (mv *MainView) Schedule() *components.ScheduleTable {
	return mv.schedule
}

// Sessions exposes the session panel
func (mv *MainView) Sessions() *components.SessionPanel {
	return mv.sessionPanel
}

// ProgressOpen reports whether the loading dialog is showing
func (mv *MainView) ProgressOpen() bool {
	return mv.progress != nil && mv.progress.IsOpen()
}
