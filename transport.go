package bookchat

import "context"

// Reply is the backend's answer to a single chat message. Text is always
// present; the remaining fields depend on the conversation phase. A non-nil
// Booking signals that the backend finalized an appointment during this turn.
type Reply struct {
	Text             string
	Booking          *Booking
	Phase            Phase
	Intent           string
	NextAction       string
	AvailableSlots   []Slot
	AppointmentTypes map[string]AppointmentType
}

// Transport is the boundary to the remote booking backend. Implementations
// are stateless and safe to share across sessions. Each call is attempted
// exactly once: no retries, no backoff, no queuing — a failed send is
// resolved by the user resending.
type Transport interface {
	// Send delivers one user message for the given session and returns the
	// assistant's reply. Failures are classified with the sentinel errors in
	// errors.go: ErrNetwork, ErrProtocol, or ErrMalformedResponse.
	Send(ctx context.Context, sessionID, text string) (Reply, error)

	// Reset asks the backend to discard its conversation state for the given
	// session, using the same failure classification as Send. Callers treat
	// failures as soft: local state resets regardless of the outcome.
	Reset(ctx context.Context, sessionID string) error
}
