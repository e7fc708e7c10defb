package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
)

func testDirectory() *MemoryUserDirectory {
	return NewMemoryUserDirectory(
		User{ID: 1, Username: "ankit", Password: HashPassword("password123")},
		User{ID: 2, Username: "vishal", Password: HashPassword("password456")},
	)
}

func TestService_LoginSuccess(t *testing.T) {
	s := NewService(testDirectory(), "", nil)

	id, err := s.Login(context.Background(), "ankit", "password123")
	require.NoError(t, err)
	assert.Equal(t, "1", id.UserID)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "1", s.Current().CartKey())
}

func TestService_LoginWrongPassword(t *testing.T) {
	s := NewService(testDirectory(), "", nil)

	_, err := s.Login(context.Background(), "ankit", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())
}

func TestService_SubscribeDeliversCurrentThenChanges(t *testing.T) {
	s := NewService(testDirectory(), "", nil)

	var seen []string
	cancel := s.Subscribe(func(id iddom.Identity) {
		seen = append(seen, id.CartKey())
	})
	defer cancel()

	_, err := s.Login(context.Background(), "vishal", "password456")
	require.NoError(t, err)
	s.Logout()

	assert.Equal(t, []string{"guest", "2", "guest"}, seen)
}

func TestService_LogoutWhileGuestDoesNotEmit(t *testing.T) {
	s := NewService(testDirectory(), "", nil)

	emissions := 0
	cancel := s.Subscribe(func(iddom.Identity) { emissions++ })
	defer cancel()
	require.Equal(t, 1, emissions, "initial delivery")

	s.Logout()
	assert.Equal(t, 1, emissions)
}

func TestService_SessionPersistsAcrossInstances(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	s1 := NewService(testDirectory(), sessionPath, nil)
	_, err := s1.Login(context.Background(), "ankit", "password123")
	require.NoError(t, err)

	s2 := NewService(testDirectory(), sessionPath, nil)
	assert.True(t, s2.IsAuthenticated())
	assert.Equal(t, "1", s2.Current().UserID)

	s2.Logout()
	s3 := NewService(testDirectory(), sessionPath, nil)
	assert.False(t, s3.IsAuthenticated())
}

func TestService_CorruptSessionFileFallsBackToGuest(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(sessionPath, []byte("not-json"), 0o600))

	s := NewService(testDirectory(), sessionPath, nil)
	assert.False(t, s.IsAuthenticated())
}

func TestFileUserDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	blob := `[{"id": 7, "username": "demo", "password": "` + HashPassword("secret") + `"}]`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	d := NewFileUserDirectory(path)
	u, err := d.Authenticate(context.Background(), "demo", "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)

	_, err = d.Authenticate(context.Background(), "demo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCancelStopsDelivery(t *testing.T) {
	s := NewService(testDirectory(), "", nil)

	emissions := 0
	cancel := s.Subscribe(func(iddom.Identity) { emissions++ })
	cancel()
	cancel() // idempotent

	_, err := s.Login(context.Background(), "ankit", "password123")
	require.NoError(t, err)
	assert.Equal(t, 1, emissions, "only the initial delivery")
}
