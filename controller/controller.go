// Package controller drives the conversation state machine: one live session,
// an append-only transcript, at most one in-flight send, and the booking that
// flips the view into confirmation mode.
package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/citomed/bookchat"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultGreeting seeds the transcript of every new session.
const DefaultGreeting = "Hello! I'm here to help you schedule a medical appointment. What brings you in today?"

// FallbackReply is appended as an assistant message when the backend cannot
// be reached. The raw failure detail is recorded separately for the error
// banner; the transcript always gets this fixed, friendly text.
const FallbackReply = "I'm sorry, I'm having trouble connecting right now. Please check your connection and try again."

// Controller owns the live session. All methods are safe for concurrent use;
// the StateSending guard serializes transcript mutations, so no two replies
// can interleave their writes.
type Controller struct {
	transport bookchat.Transport
	greeting  string
	newID     func() string
	now       func() time.Time
	logger    *zap.Logger

	mu      sync.Mutex
	session bookchat.Session
	lastErr error
}

// Option configures a [Controller].
type Option func(*Controller)

// WithGreeting overrides the seeded assistant greeting.
func WithGreeting(text string) Option {
	return func(c *Controller) { c.greeting = text }
}

// WithIDGenerator overrides session ID generation. Useful for deterministic
// tests; the default is uuid.NewString.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithClock overrides the timestamp source for appended messages.
func WithClock(fn func() time.Time) Option {
	return func(c *Controller) { c.now = fn }
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a Controller and initializes a fresh session: a new ID, a
// single seeded assistant greeting, no booking, state idle. No network call
// is made.
func New(transport bookchat.Transport, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		greeting:  DefaultGreeting,
		newID:     uuid.NewString,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.mu.Lock()
	c.initSession()
	c.mu.Unlock()
	return c
}

// initSession replaces the session with a brand-new value. Caller holds mu.
func (c *Controller) initSession() {
	now := c.now()
	c.session = bookchat.Session{
		ID: c.newID(),
		Messages: []bookchat.Message{
			{Role: bookchat.RoleAssistant, Content: c.greeting, Timestamp: now},
		},
		State:     bookchat.StateIdle,
		Phase:     bookchat.PhaseGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.lastErr = nil
	c.logger.Info("session initialized", zap.String("session_id", c.session.ID))
}

// Send delivers one user message and blocks until the reply (or the fallback
// for a failed request) has been applied to the session.
//
// Blank or whitespace-only text returns [bookchat.ErrEmptyMessage] and a send
// attempted while another is in flight returns [bookchat.ErrBusy]; both leave
// the session untouched and issue no transport call. Transport failures are
// recovered here — the transcript gets FallbackReply, the detail is available
// via Snapshot, and the returned error is nil — so no failure propagates past
// this boundary.
//
// The user's message is appended before the transport call is issued, so it
// is always visible ahead of the assistant's reply.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return bookchat.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.session.State == bookchat.StateSending {
		c.mu.Unlock()
		return bookchat.ErrBusy
	}
	id := c.session.ID
	now := c.now()
	c.session.Messages = append(c.session.Messages, bookchat.Message{
		Role:      bookchat.RoleUser,
		Content:   text,
		Timestamp: now,
	})
	c.session.State = bookchat.StateSending
	c.session.UpdatedAt = now
	c.lastErr = nil
	c.mu.Unlock()

	reply, err := c.transport.Send(ctx, id, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.ID != id {
		// The session was reset while this request was in flight. A reply
		// for a superseded session ID must not touch the new session.
		c.logger.Warn("discarding stale reply",
			zap.String("request_session_id", id),
			zap.String("current_session_id", c.session.ID))
		return nil
	}

	now = c.now()
	c.session.State = bookchat.StateIdle
	c.session.UpdatedAt = now

	if err != nil {
		c.logger.Error("send failed", zap.String("session_id", id), zap.Error(err))
		c.lastErr = err
		c.session.Messages = append(c.session.Messages, bookchat.Message{
			Role:      bookchat.RoleAssistant,
			Content:   FallbackReply,
			Timestamp: now,
		})
		return nil
	}

	c.session.Messages = append(c.session.Messages, bookchat.Message{
		Role:      bookchat.RoleAssistant,
		Content:   reply.Text,
		Timestamp: now,
	})
	if reply.Phase != "" {
		c.session.Phase = reply.Phase
	}
	if reply.Booking != nil {
		// Overwrite semantics: a later booking replaces an earlier one. A
		// reply without a booking leaves any existing booking untouched.
		c.session.Booking = reply.Booking
		c.logger.Info("booking confirmed",
			zap.String("session_id", id),
			zap.String("booking_id", reply.Booking.BookingID))
	}
	return nil
}

// Reset discards the current session and starts a fresh one. Local state is
// replaced synchronously and unconditionally; the remote reset for the old
// session ID is fired in the background and its outcome only logged, so a
// failed or slow remote reset can never leave local state stale.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	old := c.session.ID
	c.initSession()
	c.mu.Unlock()

	go func() {
		if err := c.transport.Reset(ctx, old); err != nil {
			c.logger.Warn("remote reset failed", zap.String("session_id", old), zap.Error(err))
		}
	}()
}

// View is a point-in-time copy of controller state for rendering. Err holds
// the raw detail of the most recent failed send, or nil.
type View struct {
	Session bookchat.Session
	Err     error
}

// Snapshot returns a copy of the current session and the last send failure.
// The message slice is copied, so a View stays valid across later sends.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.session
	s.Messages = append([]bookchat.Message(nil), c.session.Messages...)
	return View{Session: s, Err: c.lastErr}
}
