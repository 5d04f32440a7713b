package notevault

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeBackend is a minimal NoteVault API for full-stack client tests.
type fakeBackend struct {
	mu        sync.Mutex
	listCalls int
	notes     []map[string]any
	broken    bool // when set, protected routes return 401
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-abc",
				"token_type":   "bearer",
				"user":         map[string]any{"id": 1, "name": "Ada", "email": "ada@example.com"},
			})
		})
		r.Get("/notes/", func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.broken || req.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
				return
			}
			b.listCalls++
			json.NewEncoder(w).Encode(b.notes)
		})
		r.Post("/notes/", func(w http.ResponseWriter, req *http.Request) {
			var draft map[string]any
			json.NewDecoder(req.Body).Decode(&draft)
			b.mu.Lock()
			note := map[string]any{"id": len(b.notes) + 1, "title": draft["title"]}
			b.notes = append(b.notes, note)
			b.mu.Unlock()
			json.NewEncoder(w).Encode(note)
		})
	})
	return r
}

func newTestClient(t *testing.T, backend *fakeBackend, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)

	opts = append([]Option{
		WithBaseURL(srv.URL + "/api"),
		WithSessionPath(filepath.Join(t.TempDir(), "session.json")),
	}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestLoginThenCachedList(t *testing.T) {
	backend := &fakeBackend{notes: []map[string]any{{"id": 1, "title": "first"}}}
	c := newTestClient(t, backend)

	if c.Auth().IsAuthenticated() {
		t.Fatal("fresh client must start unauthenticated")
	}
	if _, err := c.Auth().Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !c.Auth().IsAuthenticated() {
		t.Fatal("client must be authenticated after login")
	}

	for i := 0; i < 3; i++ {
		notes, err := c.Notes().List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("expected 1 note, got %d", len(notes))
		}
	}
	if backend.listCalls != 1 {
		t.Errorf("expected one backend list call, got %d", backend.listCalls)
	}
}

func TestCreateInvalidatesList(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestClient(t, backend)
	ctx := context.Background()

	if _, err := c.Auth().Login(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.Notes().List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := c.Notes().Create(ctx, NoteDraft{Title: "new"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	notes, err := c.Notes().List(ctx)
	if err != nil {
		t.Fatalf("List after create: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected the created note, got %d", len(notes))
	}
	if backend.listCalls != 2 {
		t.Errorf("create must force a list refetch, got %d calls", backend.listCalls)
	}
}

func TestAuthFailureTearsDownSession(t *testing.T) {
	backend := &fakeBackend{}
	var expired int
	c := newTestClient(t, backend, WithOnSessionExpired(func() { expired++ }))
	ctx := context.Background()

	if _, err := c.Auth().Login(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	backend.mu.Lock()
	backend.broken = true
	backend.mu.Unlock()

	_, err := c.Notes().List(ctx)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if c.Auth().IsAuthenticated() {
		t.Error("authorization failure must clear the session")
	}
	if expired != 1 {
		t.Errorf("expected one expiry callback, got %d", expired)
	}

	// A fresh login re-arms the teardown for the next failure burst.
	backend.mu.Lock()
	backend.broken = false
	backend.mu.Unlock()
	if _, err := c.Auth().Login(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("relogin: %v", err)
	}
	backend.mu.Lock()
	backend.broken = true
	backend.mu.Unlock()
	if _, err := c.Notes().List(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after relogin, got %v", err)
	}
	if expired != 2 {
		t.Errorf("expected a second expiry callback, got %d", expired)
	}
}

func TestSessionSurvivesClientRestart(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := New(WithBaseURL(srv.URL+"/api"), WithSessionPath(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := first.Auth().Login(context.Background(), "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := New(WithBaseURL(srv.URL+"/api"), WithSessionPath(path))
	if err != nil {
		t.Fatalf("New (restart): %v", err)
	}
	if !second.Auth().IsAuthenticated() {
		t.Error("session must survive a client restart")
	}
	if got := second.Auth().Session().User.Name; got != "Ada" {
		t.Errorf("expected hydrated identity, got %q", got)
	}
}

func TestLogoutFlushesCachedViews(t *testing.T) {
	backend := &fakeBackend{notes: []map[string]any{{"id": 1, "title": "first"}}}
	c := newTestClient(t, backend)
	ctx := context.Background()

	if _, err := c.Auth().Login(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.Notes().List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := c.Auth().Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := c.Auth().Login(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("relogin: %v", err)
	}
	if _, err := c.Notes().List(ctx); err != nil {
		t.Fatalf("List after relogin: %v", err)
	}
	if backend.listCalls != 2 {
		t.Errorf("logout must drop cached views, got %d list calls", backend.listCalls)
	}
}

func TestThemeDefaultsAndPersists(t *testing.T) {
	c := newTestClient(t, &fakeBackend{})

	if got := c.Theme(); got != "dark" {
		t.Errorf("expected dark default, got %q", got)
	}
	if err := c.SetTheme("light"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := c.Auth().Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := c.Theme(); got != "light" {
		t.Errorf("theme must survive logout, got %q", got)
	}
}
