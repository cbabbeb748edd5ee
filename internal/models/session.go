package models

// SessionKind identifies a phase of a race weekend
type SessionKind int

const (
	SessionRace SessionKind = iota
	SessionQualifying
	SessionSprintQualifying
	SessionSprint
)

var sessionLabels = map[SessionKind]string{
	SessionRace:             "Race",
	SessionQualifying:       "Qualifying",
	SessionSprintQualifying: "Sprint Qualifying",
	SessionSprint:           "Sprint",
}

// Label returns the display name
func (k SessionKind) Label() string {
	if label, ok := sessionLabels[k]; ok {
		return label
	}
	return sessionLabels[SessionRace]
}

func (k SessionKind) String() string {
	return k.Label()
}

// Code returns the data source session identifier. Race is the default.
func (k SessionKind) Code() string {
	switch k {
	case SessionQualifying:
		return "Q"
	case SessionSprintQualifying:
		return "SQ"
	case SessionSprint:
		return "S"
	default:
		return "R"
	}
}

// Flag returns the viewer command line switch, empty for Race.
func (k SessionKind) Flag() string {
	switch k {
	case SessionQualifying:
		return "--qualifying"
	case SessionSprintQualifying:
		return "--sprint-qualifying"
	case SessionSprint:
		return "--sprint"
	default:
		return ""
	}
}

// ParseSessionKind maps a display label back to its kind; unknown labels are Race.
func ParseSessionKind(label string) SessionKind {
	for kind, l := range sessionLabels {
		if l == label {
			return kind
		}
	}
	return SessionRace
}

// SessionsFor lists the sessions offered for an event, in weekend order.
func SessionsFor(event Event) []SessionKind {
	sessions := []SessionKind{SessionQualifying, SessionRace}
	if event.IsSprint() {
		sessions = []SessionKind{SessionSprintQualifying, SessionQualifying, SessionSprint, SessionRace}
	}
	return sessions
}

// SessionRequest is what a single launch asks the data source and viewer for.
type SessionRequest struct {
	Year        int
	RoundNumber int
	Kind        SessionKind
}

func (r SessionRequest) Code() string {
	return r.Kind.Code()
}

// SessionData summarises a loaded session
type SessionData struct {
	Year      int
	Round     int
	Code      string
	EventName string
	Entries   int
}
