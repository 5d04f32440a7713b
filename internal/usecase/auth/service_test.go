package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/notevault/notevault-go/internal/domain"
)

type mockGateway struct {
	user      domain.User
	token     string
	err       error
	registers int
	logins    int
	lastEmail string
}

func (m *mockGateway) Register(_ context.Context, name, email, _ string) (domain.User, string, error) {
	m.registers++
	m.lastEmail = email
	if m.err != nil {
		return domain.User{}, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockGateway) Login(_ context.Context, email, _ string) (domain.User, string, error) {
	m.logins++
	m.lastEmail = email
	if m.err != nil {
		return domain.User{}, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockGateway) Me(_ context.Context) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	return m.user, nil
}

type mockSessions struct {
	cur    domain.Session
	setErr error
	sets   int
	clears int
}

func (m *mockSessions) Set(user domain.User, token string) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.cur = domain.Session{User: user, Token: token}
	return nil
}

func (m *mockSessions) Clear() error {
	m.clears++
	m.cur = domain.Session{}
	return nil
}

func (m *mockSessions) Current() domain.Session { return m.cur }
func (m *mockSessions) IsAuthenticated() bool   { return m.cur.Valid() }

func TestLoginEstablishesSession(t *testing.T) {
	gw := &mockGateway{user: domain.User{ID: 1, Name: "Ada", Email: "ada@example.com"}, token: "tok-1"}
	sessions := &mockSessions{}
	svc := New(gw, sessions, nil)

	u, err := svc.Login(context.Background(), "Ada@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("unexpected user %+v", u)
	}
	if !sessions.IsAuthenticated() {
		t.Error("session should be established after login")
	}
	if gw.lastEmail != "ada@example.com" {
		t.Errorf("email should be normalized, got %q", gw.lastEmail)
	}
}

func TestRegisterValidatesBeforeNetwork(t *testing.T) {
	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "   ", "a@b.co", "longenough"},
		{"bad email", "Ada", "not-an-email", "longenough"},
		{"no domain dot", "Ada", "a@nodot", "longenough"},
		{"short password", "Ada", "a@b.co", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{}
			svc := New(gw, &mockSessions{}, nil)

			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if gw.registers != 0 {
				t.Error("invalid input must not reach the backend")
			}
		})
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	gw := &mockGateway{user: domain.User{ID: 2, Name: "Lin"}, token: "tok-2"}
	sessions := &mockSessions{}
	svc := New(gw, sessions, nil)

	if _, err := svc.Register(context.Background(), "Lin", "lin@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sessions.cur.Token != "tok-2" {
		t.Errorf("expected persisted token, got %q", sessions.cur.Token)
	}
}

func TestDuplicateRegistrationSurfaces(t *testing.T) {
	gw := &mockGateway{err: domain.ErrAlreadyExists}
	sessions := &mockSessions{}
	svc := New(gw, sessions, nil)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "password123")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if sessions.sets != 0 {
		t.Error("failed registration must not touch the session")
	}
}

func TestLoginPersistFailureSurfaces(t *testing.T) {
	gw := &mockGateway{user: domain.User{ID: 1}, token: "tok-1"}
	sessions := &mockSessions{setErr: errors.New("disk full")}
	svc := New(gw, sessions, nil)

	if _, err := svc.Login(context.Background(), "a@b.co", "hunter22"); err == nil {
		t.Fatal("expected persist error to surface")
	}
	if sessions.IsAuthenticated() {
		t.Error("failed persist must leave the session unauthenticated")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	sessions := &mockSessions{}
	svc := New(&mockGateway{}, sessions, nil)

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
	if svc.IsAuthenticated() {
		t.Error("logout must leave the client unauthenticated")
	}
}
