// Package auth drives login, registration and logout against the session
// store. Credential validation happens here, before any network call.
package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/notevault/notevault-go/internal/domain"
)

const minPasswordLen = 8

// Service handles the authentication lifecycle.
type Service struct {
	gw       Gateway
	sessions SessionWriter
	logger   *zap.Logger
}

// New creates an auth service.
func New(gw Gateway, sessions SessionWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, sessions: sessions, logger: logger}
}

// Register creates an account and establishes the session.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if len(password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters",
			domain.ErrValidation, minPasswordLen)
	}

	user, token, err := s.gw.Register(ctx, strings.TrimSpace(name), normalizeEmail(email), password)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.sessions.Set(user, token); err != nil {
		return domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info("registered", zap.Int("user_id", user.ID))
	return user, nil
}

// Login authenticates and establishes the session.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	user, token, err := s.gw.Login(ctx, normalizeEmail(email), password)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.sessions.Set(user, token); err != nil {
		return domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info("logged in", zap.Int("user_id", user.ID))
	return user, nil
}

// Me returns the identity behind the current credential, straight from the
// backend.
func (s *Service) Me(ctx context.Context) (domain.User, error) {
	return s.gw.Me(ctx)
}

// Logout clears the session. Safe to call when already logged out.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// Session returns the current session state without touching the network.
func (s *Service) Session() domain.Session {
	return s.sessions.Current()
}

// IsAuthenticated reports credential presence without I/O.
func (s *Service) IsAuthenticated() bool {
	return s.sessions.IsAuthenticated()
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
