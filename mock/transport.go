// Package mock provides test doubles for bookchat interfaces using function fields.
package mock

import (
	"context"

	"github.com/citomed/bookchat"
)

// Interface compliance check.
var _ bookchat.Transport = (*Transport)(nil)

// Transport is a test double for bookchat.Transport.
// Set the function fields for the methods you need; unset methods succeed
// with zero values so fire-and-forget calls don't require stubbing.
type Transport struct {
	SendFn  func(ctx context.Context, sessionID, text string) (bookchat.Reply, error)
	ResetFn func(ctx context.Context, sessionID string) error
}

// Send delegates to SendFn.
func (t *Transport) Send(ctx context.Context, sessionID, text string) (bookchat.Reply, error) {
	if t.SendFn == nil {
		return bookchat.Reply{}, nil
	}
	return t.SendFn(ctx, sessionID, text)
}

// Reset delegates to ResetFn.
func (t *Transport) Reset(ctx context.Context, sessionID string) error {
	if t.ResetFn == nil {
		return nil
	}
	return t.ResetFn(ctx, sessionID)
}
