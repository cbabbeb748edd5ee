package models

import (
	"strconv"
	"strings"
)

// Event is one race weekend of a season as returned by the data source.
type Event struct {
	RoundNumber int    `json:"round_number"`
	EventName   string `json:"event_name"`
	Country     string `json:"country"`
	Date        string `json:"date"`
	Type        string `json:"type"` // event format, e.g. "conventional", "sprint_qualifying"
}

// IsSprint reports whether the weekend runs a sprint format
func (e Event) IsSprint() bool {
	return strings.Contains(strings.ToLower(e.Type), "sprint")
}

// Columns returns the table cells shown for the event: round, name, country, date
func (e Event) Columns() [4]string {
	round := ""
	if e.RoundNumber != NoRound {
		round = strconv.Itoa(e.RoundNumber)
	}
	return [4]string{round, e.EventName, e.Country, e.Date}
}

// NoRound marks an event whose round number is unknown. Round 0 is
// pre-season testing.
const NoRound = -1

// EventColumns are the schedule table headers, in Columns order
var EventColumns = [4]string{"Round", "Grand Prix", "Country", "Start Date"}
