package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"f1-race-analysis/internal/models"
)

var columnWidths = [4]float32{70, 300, 160, 130}

// ScheduleTable lists the events of a season in the order received.
type ScheduleTable struct {
	table  *widget.Table
	events []models.Event

	selectHandler func(models.Event)
}

// NewScheduleTable creates an empty four-column schedule table
func NewScheduleTable() *ScheduleTable {
	st := &ScheduleTable{}

	st.table = widget.NewTableWithHeaders(
		func() (int, int) { return len(st.events), len(models.EventColumns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			cell.(*widget.Label).SetText(st.CellText(id.Row, id.Col))
		},
	)
	st.table.ShowHeaderColumn = false
	st.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	st.table.UpdateHeader = func(id widget.TableCellID, cell fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(models.EventColumns) {
			cell.(*widget.Label).SetText(models.EventColumns[id.Col])
		}
	}
	for col, width := range columnWidths {
		st.table.SetColumnWidth(col, width)
	}

	st.table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(st.events) || st.selectHandler == nil {
			return
		}
		st.selectHandler(st.events[id.Row])
	}

	return st
}

// SetEvents replaces the table content
func (st *ScheduleTable) SetEvents(events []models.Event) {
	st.events = events
	st.table.UnselectAll()
	st.table.Refresh()
}

// Clear empties the table
func (st *ScheduleTable) Clear() {
	st.SetEvents(nil)
}

// Rows returns the number of event rows
func (st *ScheduleTable) Rows() int {
	return len(st.events)
}

// Event returns the event shown in row
func (st *ScheduleTable) Event(row int) (models.Event, bool) {
	if row < 0 || row >= len(st.events) {
		return models.Event{}, false
	}
	return st.events[row], true
}

// CellText returns the text displayed at row, col
func (st *ScheduleTable) CellText(row, col int) string {
	event, ok := st.Event(row)
	if !ok || col < 0 || col >= len(models.EventColumns) {
		return ""
	}
	return event.Columns()[col]
}

// Select selects row as if the user clicked it
func (st *ScheduleTable) Select(row int) {
	st.table.Select(widget.TableCellID{Row: row, Col: 0})
}

func (st *ScheduleTable) SetSelectHandler(handler func(models.Event)) {
	st.selectHandler = handler
}

func (st *ScheduleTable) Widget() *widget.Table {
	return st.table
}
