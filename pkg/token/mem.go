package token

import (
	"context"
	"sync"
	"time"
)

// MemStore holds the credentials for the lifetime of the process. Used in
// tests and for sessions that should not outlive the run.
type MemStore struct {
	mu      sync.Mutex
	creds   Credentials
	present bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) Set(_ context.Context, token string, expiration time.Time) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.creds = Credentials{Token: token, Expiration: expiration}
	ms.present = true
	return nil
}

func (ms *MemStore) Get(_ context.Context) (Credentials, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !ms.present {
		return Credentials{}, false, nil
	}
	return ms.creds, true, nil
}

func (ms *MemStore) Clear(_ context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.creds = Credentials{}
	ms.present = false
	return nil
}
