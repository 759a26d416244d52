package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogtty/internal/api"
	"blogtty/internal/config"
)

// fakeBackend is a minimal auth backend: one valid account, one valid
// token.
type fakeBackend struct {
	validToken string
	email      string
	password   string
	user       api.AuthUser
	conflict   bool
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != b.email || req["password"] != b.password {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"status": 401, "message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(api.AuthResponse{Token: b.validToken, ExpiresIn: 3600})
	})
	mux.HandleFunc("/api/v1/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		if b.conflict {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"status": 409, "message": "Email already in use"})
			return
		}
		json.NewEncoder(w).Encode(api.AuthResponse{Token: b.validToken, ExpiresIn: 3600})
	})
	mux.HandleFunc("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"status": 401, "message": "Unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(b.user)
	})
	return mux
}

func newTestManager(t *testing.T, b *fakeBackend, persistedToken string) *Manager {
	t.Helper()
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())
	if persistedToken != "" {
		if err := config.SetToken(persistedToken); err != nil {
			t.Fatalf("SetToken: %v", err)
		}
	}

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	m := New(persistedToken)
	client, err := api.New(api.Config{
		BaseURL:        srv.URL,
		TokenSource:    m.Token,
		OnUnauthorized: m.HandleUnauthorized,
	})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	m.AttachClient(client)
	return m
}

func persistedToken(t *testing.T) string {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg.Token
}

func TestRestoreValidToken(t *testing.T) {
	b := &fakeBackend{
		validToken: "tok-ok",
		user:       api.AuthUser{ID: "u1", Name: "Ana", Roles: []api.Role{{ID: "r1", Name: api.AdminRole}}},
	}
	m := newTestManager(t, b, "tok-ok")

	if !m.Loading() {
		t.Fatal("expected loading before restore")
	}
	m.Restore(context.Background())

	if m.Loading() {
		t.Fatal("expected loading done after restore")
	}
	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
	if !m.IsAdmin() {
		t.Fatal("expected admin")
	}
	if u := m.User(); u == nil || u.Name != "Ana" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestRestoreRejectedTokenDowngradesSilently(t *testing.T) {
	b := &fakeBackend{validToken: "tok-ok", user: api.AuthUser{ID: "u1"}}
	m := newTestManager(t, b, "tok-stale")

	m.Restore(context.Background())

	if m.IsAuthenticated() {
		t.Fatal("expected anonymous session after rejected restore")
	}
	if m.Token() != "" {
		t.Fatal("expected in-memory token cleared")
	}
	if persistedToken(t) != "" {
		t.Fatal("expected persisted token cleared")
	}
}

func TestRestoreWithoutToken(t *testing.T) {
	b := &fakeBackend{validToken: "tok-ok"}
	m := newTestManager(t, b, "")

	m.Restore(context.Background())
	if m.Loading() || m.IsAuthenticated() {
		t.Fatal("expected anonymous non-loading session")
	}
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	b := &fakeBackend{
		validToken: "tok-new",
		email:      "ana@example.com",
		password:   "secret",
		user:       api.AuthUser{ID: "u1", Name: "Ana"},
	}
	m := newTestManager(t, b, "")

	if err := m.Login(context.Background(), "ana@example.com", "secret"); err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}
	if persistedToken(t) != "tok-new" {
		t.Fatal("expected token persisted")
	}
}

func TestLoginFailureMessage(t *testing.T) {
	b := &fakeBackend{validToken: "tok", email: "ana@example.com", password: "secret"}
	m := newTestManager(t, b, "")

	err := m.Login(context.Background(), "ana@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	authErr, ok := err.(*AuthError)
	if !ok {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Fatalf("expected backend message, got %q", authErr.Message)
	}
	if m.IsAuthenticated() {
		t.Fatal("expected anonymous session after failed login")
	}
}

func TestSignupConflictMessage(t *testing.T) {
	b := &fakeBackend{validToken: "tok", conflict: true}
	m := newTestManager(t, b, "")

	err := m.Signup(context.Background(), "Ana", "ana@example.com", "secret")
	authErr, ok := err.(*AuthError)
	if !ok {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Message != "Email already in use" {
		t.Fatalf("expected backend message, got %q", authErr.Message)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	b := &fakeBackend{
		validToken: "tok-ok",
		email:      "ana@example.com",
		password:   "secret",
		user:       api.AuthUser{ID: "u1", Name: "Ana"},
	}
	m := newTestManager(t, b, "")
	if err := m.Login(context.Background(), "ana@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	m.Logout()

	if m.IsAuthenticated() || m.Token() != "" || m.User() != nil {
		t.Fatal("expected fully cleared session")
	}
	if persistedToken(t) != "" {
		t.Fatal("expected persisted token cleared")
	}
}

func TestUnauthorizedHookClearsSession(t *testing.T) {
	b := &fakeBackend{
		validToken: "tok-ok",
		email:      "ana@example.com",
		password:   "secret",
		user:       api.AuthUser{ID: "u1"},
	}
	m := newTestManager(t, b, "")
	if err := m.Login(context.Background(), "ana@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Simulate the backend invalidating the token: the next authenticated
	// call 401s and the client hook wipes the session.
	b.validToken = "tok-rotated"
	_, err := m.client.Me(context.Background())
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if m.IsAuthenticated() || m.Token() != "" {
		t.Fatal("expected session cleared by 401 hook")
	}
	if persistedToken(t) != "" {
		t.Fatal("expected persisted token cleared by 401 hook")
	}
}
