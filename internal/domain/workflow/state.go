package workflow

// State is a node of one of the client's state machines
type State string

// Session bootstrap states
const (
	StateIdle             State = "IDLE"
	StateAuthenticating   State = "AUTHENTICATING"
	StateRegisterFallback State = "REGISTER_FALLBACK"
	StateRegistering      State = "REGISTERING"
	StateAuthenticated    State = "AUTHENTICATED"
	StateFailed           State = "FAILED"
)

// Bill lifecycle states, named after the bill status values
const (
	StatePending  State = "pending"
	StateAccepted State = "accepted"
	StateRefused  State = "refused"
)

// Dashboard group and bill detail states
const (
	StateCollapsed  State = "COLLAPSED"
	StateExpanded   State = "EXPANDED"
	StateSummary    State = "SUMMARY"
	StateDetailForm State = "DETAIL_FORM"
)

// IsTerminal returns true if no further transitions are expected from the state
func (s State) IsTerminal() bool {
	switch s {
	case StateAuthenticated, StateFailed, StateAccepted, StateRefused:
		return true
	default:
		return false
	}
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state belongs to one of the known machines
func (s State) IsValid() bool {
	switch s {
	case StateIdle, StateAuthenticating, StateRegisterFallback, StateRegistering,
		StateAuthenticated, StateFailed,
		StatePending, StateAccepted, StateRefused,
		StateCollapsed, StateExpanded, StateSummary, StateDetailForm:
		return true
	default:
		return false
	}
}
