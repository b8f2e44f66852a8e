// Package session decides whether the stored credential still authenticates
// the user and publishes that state to the rest of the application.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoreira/produtos-cli/pkg/token"
)

// Evaluator is the single source of truth for session validity.
type Evaluator struct {
	store token.Store
	now   func() time.Time
}

func NewEvaluator(store token.Store) *Evaluator {
	return &Evaluator{
		store: store,
		now:   time.Now,
	}
}

// NewEvaluatorWithClock injects the clock. Tests only.
func NewEvaluatorWithClock(store token.Store, now func() time.Time) *Evaluator {
	return &Evaluator{store: store, now: now}
}

// IsValid is a read with cleanup: an expired credential is removed from the
// store before false is reported. The expiry instant itself counts as
// expired. Expiry is checked on every call, never cached.
func (e *Evaluator) IsValid(ctx context.Context) (bool, error) {
	creds, ok, err := e.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("session/evaluator: failed reading token store, %w", err)
	}
	if !ok {
		return false, nil
	}

	if !e.now().Before(creds.Expiration) {
		if err := e.store.Clear(ctx); err != nil {
			return false, fmt.Errorf("session/evaluator: failed clearing expired token, %w", err)
		}
		return false, nil
	}
	return true, nil
}
