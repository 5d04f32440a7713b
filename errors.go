package notevault

import "github.com/notevault/notevault-go/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation           = domain.ErrValidation
	ErrUnauthorized         = domain.ErrUnauthorized
	ErrNotFound             = domain.ErrNotFound
	ErrAlreadyExists        = domain.ErrAlreadyExists
	ErrServer               = domain.ErrServer
	ErrNetwork              = domain.ErrNetwork
	ErrExpansionUnavailable = domain.ErrExpansionUnavailable
)
