// Package backend implements bookchat.Transport against the booking API's
// REST endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/citomed/bookchat"
	"go.uber.org/zap"
)

// DefaultBaseURL matches the development deployment of the booking backend,
// which mounts every endpoint under /api.
const DefaultBaseURL = "http://localhost:8000/api"

const (
	chatPath     = "/chat"
	resetPath    = "/reset-session"
	bookingsPath = "/bookings/"
	healthPath   = "/health"
)

// Interface compliance check.
var _ bookchat.Transport = (*Client)(nil)

// Client is an HTTP client for the booking backend. It is stateless and safe
// to share across sessions. Every request is attempted exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Useful for timeouts and for
// testing with httptest.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new backend [Client]. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// chatResponse mirrors the /chat response body. Fields the client has no use
// for (patient_info, booking_details) are left undecoded.
type chatResponse struct {
	Response         string                              `json:"response"`
	Booking          *bookchat.Booking                   `json:"booking"`
	Phase            bookchat.Phase                      `json:"phase"`
	Intent           string                              `json:"intent"`
	NextAction       string                              `json:"next_action"`
	AvailableSlots   []bookchat.Slot                     `json:"available_slots"`
	AppointmentTypes map[string]bookchat.AppointmentType `json:"appointment_types"`
}

// Send posts one user message to the chat endpoint and returns the
// assistant's reply.
func (c *Client) Send(ctx context.Context, sessionID, text string) (bookchat.Reply, error) {
	body, err := json.Marshal(chatRequest{SessionID: sessionID, Message: text})
	if err != nil {
		return bookchat.Reply{}, fmt.Errorf("backend: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return bookchat.Reply{}, fmt.Errorf("backend: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bookchat.Reply{}, fmt.Errorf("backend: %w: %w", err, bookchat.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return bookchat.Reply{}, statusError(resp)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return bookchat.Reply{}, fmt.Errorf("backend: decode chat response: %w: %w", err, bookchat.ErrMalformedResponse)
	}

	c.logger.Debug("chat reply",
		zap.String("session_id", sessionID),
		zap.String("phase", string(decoded.Phase)),
		zap.String("next_action", decoded.NextAction),
		zap.Bool("booking", decoded.Booking != nil))

	return bookchat.Reply{
		Text:             decoded.Response,
		Booking:          decoded.Booking,
		Phase:            decoded.Phase,
		Intent:           decoded.Intent,
		NextAction:       decoded.NextAction,
		AvailableSlots:   decoded.AvailableSlots,
		AppointmentTypes: decoded.AppointmentTypes,
	}, nil
}

// Reset asks the backend to discard conversation state for the session.
func (c *Client) Reset(ctx context.Context, sessionID string) error {
	u := c.baseURL + resetPath + "?session_id=" + url.QueryEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %w: %w", err, bookchat.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return nil
}

// Booking retrieves a confirmed booking by its ID.
func (c *Client) Booking(ctx context.Context, bookingID string) (bookchat.Booking, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+bookingsPath+url.PathEscape(bookingID), nil)
	if err != nil {
		return bookchat.Booking{}, fmt.Errorf("backend: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bookchat.Booking{}, fmt.Errorf("backend: %w: %w", err, bookchat.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return bookchat.Booking{}, statusError(resp)
	}

	var b bookchat.Booking
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return bookchat.Booking{}, fmt.Errorf("backend: decode booking: %w: %w", err, bookchat.ErrMalformedResponse)
	}
	return b, nil
}

// Health probes the backend's health endpoint. It returns nil when the
// backend reports healthy and a classified error otherwise.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %w: %w", err, bookchat.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return nil
}

// statusError classifies a non-success response as a protocol failure,
// keeping a short body excerpt for diagnostics.
func statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	excerpt := strings.TrimSpace(string(body))
	if err != nil || excerpt == "" {
		return fmt.Errorf("backend: HTTP %d: %w", resp.StatusCode, bookchat.ErrProtocol)
	}
	return fmt.Errorf("backend: HTTP %d: %s: %w", resp.StatusCode, excerpt, bookchat.ErrProtocol)
}
