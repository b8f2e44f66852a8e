// Package token persists the client's access credential: one opaque token
// and its expiration instant, always written and cleared together.
package token

import (
	"context"
	"time"
)

type Credentials struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

type Store interface {
	// Set overwrites both fields unconditionally.
	Set(ctx context.Context, token string, expiration time.Time) error
	// Get reports absent (false) when either field is missing. Partial
	// state is never surfaced.
	Get(ctx context.Context) (Credentials, bool, error)
	// Clear removes both fields. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
