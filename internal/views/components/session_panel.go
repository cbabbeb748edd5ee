package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"f1-race-analysis/internal/models"
)

// F1Red is the accent color
var F1Red = color.NRGBA{R: 0xcc, A: 0xff}

const panelWidth = 240

// sessionAction binds one session button to the event and session it launches
type sessionAction struct {
	event models.Event
	kind  models.SessionKind
}

// SessionPanel offers one button per session of the selected event.
// It stays hidden until an event is selected.
type SessionPanel struct {
	container *fyne.Container
	list      *fyne.Container
	buttons   []*widget.Button
	actions   []sessionAction

	launchHandler func(models.Event, models.SessionKind)
}

func NewSessionPanel() *SessionPanel {
	sp := &SessionPanel{}

	header := canvas.NewText("Available Sessions", F1Red)
	header.TextStyle = fyne.TextStyle{Bold: true}
	header.TextSize = 18
	header.Alignment = fyne.TextAlignCenter

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(panelWidth, 0))

	sp.list = container.NewVBox()
	sp.container = container.NewStack(
		spacer,
		container.NewPadded(container.NewBorder(header, nil, nil, nil, sp.list)),
	)
	sp.container.Hide()

	return sp
}

// Show lists sessions for event and makes the panel visible
func (sp *SessionPanel) Show(event models.Event, sessions []models.SessionKind) {
	sp.actions = make([]sessionAction, len(sessions))
	sp.buttons = make([]*widget.Button, len(sessions))
	sp.list.RemoveAll()

	for i, kind := range sessions {
		sp.actions[i] = sessionAction{event: event, kind: kind}
		sp.buttons[i] = widget.NewButton(kind.Label(), sp.dispatch(i))
		sp.list.Add(sp.buttons[i])
	}

	sp.container.Show()
	sp.container.Refresh()
}

func (sp *SessionPanel) dispatch(index int) func() {
	return func() {
		if sp.launchHandler == nil || index >= len(sp.actions) {
			return
		}
		action := sp.actions[index]
		sp.launchHandler(action.event, action.kind)
	}
}

// Hide hides the panel and drops its buttons
func (sp *SessionPanel) Hide() {
	sp.container.Hide()
	sp.list.RemoveAll()
	sp.buttons = nil
	sp.actions = nil
}

func (sp *SessionPanel) Visible() bool {
	return sp.container.Visible()
}

// Buttons returns the current session buttons in display order
func (sp *SessionPanel) Buttons() []*widget.Button {
	return sp.buttons
}

func (sp *SessionPanel) SetLaunchHandler(handler func(models.Event, models.SessionKind)) {
	sp.launchHandler = handler
}

func (sp *SessionPanel) GetContainer() *fyne.Container {
	return sp.container
}
