package notevault

import (
	"context"
	"time"

	"github.com/notevault/notevault-go/internal/domain"
)

// AuthService manages the authentication lifecycle and session state.
type AuthService struct {
	svc authUseCase
	obs *observer
}

// Register creates an account and logs in. Name, email and password are
// validated locally before any network call.
func (s *AuthService) Register(
	ctx context.Context, name, email, password string,
) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("auth.register", start, err) }()

	u, err := s.svc.Register(ctx, name, email, password)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Login authenticates and persists the session.
func (s *AuthService) Login(
	ctx context.Context, email, password string,
) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("auth.login", start, err) }()

	u, err := s.svc.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Me returns the identity behind the current credential, verified against
// the backend.
func (s *AuthService) Me(ctx context.Context) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe("auth.me", start, err) }()

	u, err := s.svc.Me(ctx)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Logout clears the session. Safe to call when already logged out.
func (s *AuthService) Logout() (err error) {
	start := time.Now()
	defer func() { s.obs.observe("auth.logout", start, err) }()

	return s.svc.Logout()
}

// Session returns the current session state without touching the network.
func (s *AuthService) Session() Session {
	return s.svc.Session()
}

// IsAuthenticated reports credential presence without any I/O.
func (s *AuthService) IsAuthenticated() bool {
	return s.svc.IsAuthenticated()
}
