package auth

import (
	"context"

	"github.com/notevault/notevault-go/internal/domain"
)

// Gateway is the backend auth surface.
type Gateway interface {
	Register(ctx context.Context, name, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Me(ctx context.Context) (domain.User, error)
}

// SessionWriter is the session-store surface the auth service drives.
type SessionWriter interface {
	Set(user domain.User, token string) error
	Clear() error
	Current() domain.Session
	IsAuthenticated() bool
}
