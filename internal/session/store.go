// Package session owns the process-wide authentication state. Durable
// storage is touched by this package only; everything else reads through
// the Store.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/notevault/notevault-go/internal/domain"
)

// Store is the single source of truth for "is this client authenticated,
// as whom". In-memory state and the session file are kept in lockstep: the
// file is written under the same lock as the memory update, and a failed
// write leaves memory unchanged.
type Store struct {
	mu     sync.Mutex
	path   string
	cur    domain.Session
	subs   []func(domain.Session)
	logger *zap.Logger
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "notevault", "session.json"), nil
}

// NewStore creates a store and hydrates it from the session file. A missing
// or unreadable file yields an empty session; absence is a normal state,
// not an error.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{path: path, logger: logger}
	s.hydrate()
	return s, nil
}

// hydrate loads the persisted session into memory. Called once before any
// protected operation runs.
func (s *Store) hydrate() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("session file unreadable, starting unauthenticated",
				zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("session file corrupt, starting unauthenticated",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	s.cur = sess
}

// Current returns a copy of the session state.
func (s *Store) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Token returns the bearer credential, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Token
}

// IsAuthenticated reports credential presence. Pure predicate over the
// in-memory state; performs no I/O.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Valid()
}

// Set persists the identity and credential together, then updates memory
// and notifies subscribers synchronously. On a write failure memory is left
// as it was.
func (s *Store) Set(user domain.User, token string) error {
	s.mu.Lock()
	next := s.cur
	next.User = user
	next.Token = token
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cur = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.notify(subs, next)
	return nil
}

// Clear removes the identity and credential from storage and memory.
// Idempotent: clearing an already-cleared store is a no-op that still
// succeeds. The theme preference survives logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	if !s.cur.Valid() && s.cur.User == (domain.User{}) {
		s.mu.Unlock()
		return nil
	}
	next := domain.Session{Theme: s.cur.Theme}
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cur = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.notify(subs, next)
	return nil
}

// Theme returns the persisted UI theme, defaulting to "dark".
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur.Theme == "" {
		return "dark"
	}
	return s.cur.Theme
}

// SetTheme persists the UI theme preference.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	next := s.cur
	next.Theme = theme
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cur = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	s.notify(subs, next)
	return nil
}

// Subscribe registers a callback invoked synchronously after every state
// change, with a copy of the new state.
func (s *Store) Subscribe(fn func(domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) snapshotSubs() []func(domain.Session) {
	out := make([]func(domain.Session), len(s.subs))
	copy(out, s.subs)
	return out
}

func (s *Store) notify(subs []func(domain.Session), sess domain.Session) {
	for _, fn := range subs {
		fn(sess)
	}
}

// persist writes the session file atomically (temp file + rename).
// Caller holds the lock.
func (s *Store) persist(sess domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
