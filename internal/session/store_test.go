package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/notevault/notevault-go/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := NewStore(path, nil)
	require.NoError(t, err)
	return s
}

func TestSetAndHydrateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := NewStore(path, nil)
	require.NoError(t, err)

	user := domain.User{ID: 3, Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.Set(user, "tok-abc"))
	require.True(t, s.IsAuthenticated())

	// A fresh store over the same file sees the persisted state.
	reloaded, err := NewStore(path, nil)
	require.NoError(t, err)
	require.True(t, reloaded.IsAuthenticated())
	require.Equal(t, user, reloaded.Current().User)
	require.Equal(t, "tok-abc", reloaded.Token())
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set(domain.User{ID: 1}, "tok"))

	require.NoError(t, s.Clear())
	require.False(t, s.IsAuthenticated())
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	require.False(t, s.IsAuthenticated())
}

func TestClearKeepsTheme(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetTheme("light"))
	require.NoError(t, s.Set(domain.User{ID: 1}, "tok"))

	require.NoError(t, s.Clear())
	require.Equal(t, "light", s.Theme())
}

func TestThemeDefaultsToDark(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, "dark", s.Theme())
}

func TestCorruptFileStartsUnauthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewStore(path, nil)
	require.NoError(t, err)
	require.False(t, s.IsAuthenticated())
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	s := newTestStore(t)

	var seen []string
	s.Subscribe(func(sess domain.Session) {
		seen = append(seen, sess.Token)
	})

	require.NoError(t, s.Set(domain.User{ID: 1}, "tok-1"))
	require.NoError(t, s.Clear())

	require.Equal(t, []string{"tok-1", ""}, seen)
}

func TestSetFailureLeavesMemoryUnchanged(t *testing.T) {
	dir := t.TempDir()
	// Make the session path a directory so the rename fails.
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.MkdirAll(path, 0o700))

	s, err := NewStore(path, nil)
	require.NoError(t, err)

	err = s.Set(domain.User{ID: 9}, "tok")
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
}

func TestClaimsFromToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": float64(4102444800), // 2100-01-01
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	s := newTestStore(t)
	require.NoError(t, s.Set(domain.User{ID: 42}, signed))

	c := s.Claims()
	require.Equal(t, "42", c.Subject)
	require.False(t, c.ExpiresAt.IsZero())
}

func TestClaimsMalformedToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set(domain.User{ID: 1}, "not-a-jwt"))
	require.Equal(t, Claims{}, s.Claims())
}
