package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// StatusBar is the footer: application name on the left, status and
// version on the right.
type StatusBar struct {
	container   *fyne.Container
	titleLabel  *widget.Label
	statusLabel *widget.Label
	version     *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar(appName, version string) *StatusBar {
	sb := &StatusBar{}
	sb.createComponents(appName, version)
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents(appName, version string) {
	sb.titleLabel = widget.NewLabel(fmt.Sprintf("%s - Telemetry Visualization Tool", appName))
	sb.titleLabel.Importance = widget.LowImportance
	sb.statusLabel = widget.NewLabel("Ready")
	sb.version = widget.NewLabel("v" + version)
	sb.version.Importance = widget.LowImportance
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		widget.NewSeparator(), nil,
		sb.titleLabel,
		container.NewHBox(sb.statusLabel, widget.NewSeparator(), sb.version),
	)
}

// SetStatus updates the status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// ProgressDialog is a modal, indeterminate progress indicator with no
// cancel button.
type ProgressDialog struct {
	dialog *dialog.CustomDialog
	bar    *widget.ProgressBarInfinite
	open   bool
}

// NewProgressDialog creates the dialog without showing it
func NewProgressDialog(title, message string, parent fyne.Window) *ProgressDialog {
	bar := widget.NewProgressBarInfinite()
	content := container.NewVBox(widget.NewLabel(message), bar)

	return &ProgressDialog{
		dialog: dialog.NewCustomWithoutButtons(title, content, parent),
		bar:    bar,
	}
}

func (pd *ProgressDialog) Show() {
	pd.open = true
	pd.bar.Start()
	pd.dialog.Show()
}

// Close hides the dialog; further calls do nothing
func (pd *ProgressDialog) Close() {
	if !pd.open {
		return
	}
	pd.open = false
	pd.bar.Stop()
	pd.dialog.Hide()
}

// IsOpen reports whether the dialog is showing
func (pd *ProgressDialog) IsOpen() bool {
	return pd.open
}
