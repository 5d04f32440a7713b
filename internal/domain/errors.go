package domain

import "errors"

// Sentinel errors shared across the client. Wrap with fmt.Errorf("...: %w")
// and check with errors.Is().
var (
	// ErrValidation marks input rejected on the client before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks a 401-class response. The gateway handles session
	// teardown centrally; callers only see the error itself.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a missing note or document.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists marks a conflicting registration (email already taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrServer marks a 5xx response from the backend.
	ErrServer = errors.New("server error")

	// ErrNetwork marks a transport-level failure (timeout, refused, DNS).
	ErrNetwork = errors.New("network error")

	// ErrExpansionUnavailable marks a failed AI query expansion. Search
	// degrades to the raw query instead of failing; this error is logged
	// and counted, never returned from Search itself.
	ErrExpansionUnavailable = errors.New("query expansion unavailable")
)
