package bookchat

import "time"

// Message is a single turn in the conversation transcript. Messages are
// append-only: once added to a session they are never edited, reordered, or
// removed except by a full session reset.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}
