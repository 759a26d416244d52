// Package session owns the client-side authentication lifecycle: the
// bearer token, the current user profile, and the silent restore that
// runs at startup. Only Login, Signup, Logout and Restore mutate the
// state; everything else gets read-only accessors.
package session

import (
	"context"
	"errors"
	"sync"

	"blogtty/internal/api"
	"blogtty/internal/config"
)

// AuthError carries a message fit for direct display next to the auth
// form. It never wraps transport details.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

const (
	loginFallbackMessage  = "The email or password you entered is incorrect, please try again."
	signupFallbackMessage = "That email is already registered."
)

// Manager holds {token, user, loading}. Invariant: token absent implies
// user absent; both transitions happen under one lock so readers never
// observe a user without a token.
type Manager struct {
	mu      sync.Mutex
	client  *api.Client
	token   string
	user    *api.AuthUser
	loading bool
}

// New builds a Manager seeded with the persisted token (if any). The
// API client is attached afterwards because its TokenSource and
// OnUnauthorized hooks point back at this Manager.
func New(persistedToken string) *Manager {
	return &Manager{token: persistedToken, loading: true}
}

func (m *Manager) AttachClient(client *api.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = client
}

// Token is the client's TokenSource: read at request time.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) User() *api.AuthUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

func (m *Manager) IsAdmin() bool {
	u := m.User()
	return u != nil && u.HasRole(api.AdminRole)
}

// Loading reports whether the startup restore is still in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Restore attempts a silent session restore from the persisted token.
// Any failure (expired or rejected token) downgrades to anonymous and
// clears storage without surfacing an error; a missing token is simply
// the anonymous case.
func (m *Manager) Restore(ctx context.Context) {
	defer m.setLoading(false)

	if m.Token() == "" {
		return
	}
	user, err := m.client.Me(ctx)
	if err != nil {
		// 401 already wiped storage through the client hook; clear again
		// for non-401 failures so a bad token never sticks around.
		m.clear()
		_ = config.ClearToken()
		return
	}
	m.setUser(user)
}

// Login exchanges credentials for a token, persists it, then fetches the
// profile. The returned error (if any) is always an *AuthError.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return &AuthError{Message: authMessage(err, loginFallbackMessage)}
	}
	m.setToken(resp.Token)
	if err := config.SetToken(resp.Token); err != nil {
		return &AuthError{Message: err.Error()}
	}
	user, err := m.client.Me(ctx)
	if err != nil {
		return &AuthError{Message: authMessage(err, loginFallbackMessage)}
	}
	m.setUser(user)
	return nil
}

// Signup registers a new account and logs it in. A conflict (duplicate
// email) surfaces the backend message when it has one.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	resp, err := m.client.Signup(ctx, name, email, password)
	if err != nil {
		return &AuthError{Message: authMessage(err, signupFallbackMessage)}
	}
	m.setToken(resp.Token)
	if err := config.SetToken(resp.Token); err != nil {
		return &AuthError{Message: err.Error()}
	}
	user, err := m.client.Me(ctx)
	if err != nil {
		return &AuthError{Message: authMessage(err, signupFallbackMessage)}
	}
	m.setUser(user)
	return nil
}

// Logout clears the in-memory session and the persisted token. There is
// no process reload; callers reset their own derived state, and the
// guarantee is simply that no authenticated data survives here.
func (m *Manager) Logout() {
	m.clear()
	_ = config.ClearToken()
}

// HandleUnauthorized is the API client's 401 hook: wipe the persisted
// token and drop the in-memory session. The UI redirects to its
// anonymous root when it notices the session went away.
func (m *Manager) HandleUnauthorized() {
	m.clear()
	_ = config.ClearToken()
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	if token == "" {
		m.user = nil
	}
}

func (m *Manager) setUser(user api.AuthUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		// Token was cleared while the profile fetch was in flight; keep
		// the invariant (no user without a token).
		return
	}
	m.user = &user
}

func (m *Manager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = v
}

// authMessage prefers the backend-provided message and falls back to a
// generic one when the error body was unparseable.
func authMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" && apiErr.Message != api.GenericMessage {
		return apiErr.Message
	}
	return fallback
}
