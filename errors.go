package bookchat

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNetwork indicates the backend could not be reached at all
	// (connection refused, DNS failure, timeout).
	ErrNetwork = errors.New("network error")

	// ErrProtocol indicates the backend answered with a non-success status.
	ErrProtocol = errors.New("protocol error")

	// ErrMalformedResponse indicates the response body could not be parsed
	// into the expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyMessage indicates a blank or whitespace-only message was
	// submitted. Callers treat it as a silent no-op, not a visible failure.
	ErrEmptyMessage = errors.New("empty message")

	// ErrBusy indicates a send was attempted while another request was in
	// flight. Callers treat it as a silent no-op.
	ErrBusy = errors.New("send already in flight")
)
