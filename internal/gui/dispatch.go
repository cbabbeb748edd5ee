package gui

import (
	"fyne.io/fyne/v2"
)

// Dispatcher runs functions on the UI goroutine. Background workers hand
// their results to it instead of touching widgets or launcher state.
type Dispatcher interface {
	Do(fn func())
}

// FyneDispatcher queues onto the Fyne event loop
type FyneDispatcher struct{}

func (FyneDispatcher) Do(fn func()) {
	fyne.Do(fn)
}

// Inline runs fn on the calling goroutine.
type Inline struct{}

func (Inline) Do(fn func()) {
	fn()
}
