package f1data

// Ergast-compatible response envelopes. Only the fields the launcher
// consumes are decoded.

type response struct {
	MRData struct {
		RaceTable raceTable `json:"RaceTable"`
	} `json:"MRData"`
}

type raceTable struct {
	Season string `json:"season"`
	Races  []race `json:"Races"`
}

type race struct {
	Season   string `json:"season"`
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	Circuit  struct {
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
	Date string `json:"date"`

	Sprint           *sessionTime `json:"Sprint,omitempty"`
	SprintQualifying *sessionTime `json:"SprintQualifying,omitempty"`
	SprintShootout   *sessionTime `json:"SprintShootout,omitempty"`

	Results           []result `json:"Results,omitempty"`
	QualifyingResults []result `json:"QualifyingResults,omitempty"`
	SprintResults     []result `json:"SprintResults,omitempty"`
}

type sessionTime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type result struct {
	Number   string `json:"number"`
	Position string `json:"position"`
	Driver   struct {
		DriverID string `json:"driverId"`
		Code     string `json:"code"`
	} `json:"Driver"`
}

// Event formats reported in models.Event.Type
const (
	FormatConventional     = "conventional"
	FormatSprint           = "sprint"
	FormatSprintShootout   = "sprint_shootout"
	FormatSprintQualifying = "sprint_qualifying"
)

func (r race) format() string {
	switch {
	case r.SprintQualifying != nil:
		return FormatSprintQualifying
	case r.SprintShootout != nil:
		return FormatSprintShootout
	case r.Sprint != nil:
		return FormatSprint
	default:
		return FormatConventional
	}
}
