package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/jmoreira/produtos-cli/pkg/token"
)

type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// User is the minimal handle kept for an authenticated session: the raw
// token plus whatever claims it exposes.
type User struct {
	RawToken  string
	Email     string
	ExpiresAt time.Time
}

var ErrInitializing = errors.New("session: manager has not finished initializing")

// Manager publishes the session state. It starts Initializing and settles
// to Authenticated or Anonymous after Init; consumers must not query
// IsLoggedIn before that.
type Manager struct {
	store token.Store
	eval  *Evaluator

	mu    sync.Mutex
	state State
	user  *User
}

func NewManager(store token.Store, eval *Evaluator) *Manager {
	return &Manager{
		store: store,
		eval:  eval,
		state: StateInitializing,
	}
}

// Init runs the one startup evaluation and settles the state.
func (m *Manager) Init(ctx context.Context) error {
	ok, err := m.eval.IsValid(ctx)
	if err != nil {
		return fmt.Errorf("session/manager: failed initial check, %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !ok {
		m.state = StateAnonymous
		m.user = nil
		return nil
	}

	creds, present, err := m.store.Get(ctx)
	if err != nil || !present {
		m.state = StateAnonymous
		m.user = nil
		return err
	}
	m.state = StateAuthenticated
	m.user = userFromToken(creds.Token)
	return nil
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsLoggedIn re-derives validity from the evaluator on every call, so a
// session that expired since the last check is observed as anonymous
// without an explicit logout.
func (m *Manager) IsLoggedIn(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if m.state == StateInitializing {
		m.mu.Unlock()
		return false, ErrInitializing
	}
	m.mu.Unlock()

	ok, err := m.eval.IsValid(ctx)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !ok {
		m.state = StateAnonymous
		m.user = nil
	}
	return ok, nil
}

// Login persists the credential and moves to Authenticated from any state.
func (m *Manager) Login(ctx context.Context, tok string, expiration time.Time) error {
	if err := m.store.Set(ctx, tok, expiration); err != nil {
		return fmt.Errorf("session/manager: failed persisting token, %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticated
	m.user = userFromToken(tok)
	return nil
}

// Logout clears the credential and moves to Anonymous from any state.
// Navigation back to the login surface is the caller's concern.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("session/manager: failed clearing token, %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.user = nil
	return nil
}

func (m *Manager) User() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

const emailClaimURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"

// userFromToken decodes claims without verifying the signature; the signing
// secret belongs to the server. An opaque token still yields a usable
// handle, just without claims.
func userFromToken(raw string) *User {
	u := &User{RawToken: raw}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return u
	}

	if email, ok := claims["email"].(string); ok {
		u.Email = email
	} else if email, ok := claims[emailClaimURI].(string); ok {
		u.Email = email
	}
	if exp, ok := claims["exp"].(float64); ok {
		u.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return u
}
