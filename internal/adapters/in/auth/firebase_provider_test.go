package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
)

type fakeVerifier struct {
	uid  string
	fail error
}

func (v *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if v.fail != nil {
		return nil, v.fail
	}
	return &fbauth.Token{UID: v.uid}, nil
}

func TestFirebaseProvider_SignInWithToken(t *testing.T) {
	p := NewFirebaseProvider(&fakeVerifier{uid: "uid-1"})

	var seen []string
	cancel := p.Subscribe(func(id iddom.Identity) { seen = append(seen, id.CartKey()) })
	defer cancel()

	id, err := p.SignInWithToken(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UserID)
	assert.True(t, p.IsAuthenticated())

	p.SignOut()
	assert.False(t, p.IsAuthenticated())

	// initial guest, sign-in, sign-out
	assert.Equal(t, []string{iddom.GuestKey, "uid-1", iddom.GuestKey}, seen)
}

func TestFirebaseProvider_RejectsBadToken(t *testing.T) {
	p := NewFirebaseProvider(&fakeVerifier{fail: errors.New("expired")})

	_, err := p.SignInWithToken(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrInvalidIDToken)
	assert.False(t, p.IsAuthenticated())

	_, err = p.SignInWithToken(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestFirebaseProvider_SignOutWhileGuestDoesNotEmit(t *testing.T) {
	p := NewFirebaseProvider(&fakeVerifier{uid: "u"})

	var emits int
	cancel := p.Subscribe(func(iddom.Identity) { emits++ })
	defer cancel()

	p.SignOut()
	assert.Equal(t, 1, emits, "only the initial delivery")
}
