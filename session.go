package bookchat

import "time"

// SessionState enumerates the controller's states. A failed send produces a
// visible fallback message and returns immediately to StateIdle, so errors
// never leave the session stuck mid-flight.
type SessionState int

const (
	StateIdle    SessionState = iota // no request outstanding
	StateSending                     // exactly one request in flight
)

// String returns the state name for logs and status lines.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

// Phase is the backend's view of where the conversation stands. Values match
// the booking API's conversation_phase enum.
type Phase string

const (
	PhaseGreeting       Phase = "greeting"
	PhaseSelectingType  Phase = "selecting_appointment_type"
	PhaseUnderstanding  Phase = "understanding_needs"
	PhaseShowingSlots   Phase = "showing_slots"
	PhaseCollectingInfo Phase = "collecting_info"
	PhaseConfirming     Phase = "confirming"
	PhaseComplete       Phase = "complete"
)

// Session represents one conversation with the booking assistant. Exactly one
// Session is live per controller; a reset produces a brand-new value with a
// fresh ID rather than mutating the old one.
type Session struct {
	ID        string
	Messages  []Message
	State     SessionState
	Booking   *Booking
	Phase     Phase
	CreatedAt time.Time
	UpdatedAt time.Time
}
