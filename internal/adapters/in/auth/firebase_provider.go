// internal/adapters/in/auth/firebase_provider.go
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	fbauth "firebase.google.com/go/v4/auth"

	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
)

var ErrInvalidIDToken = errors.New("auth: invalid id token")

// TokenVerifier checks a Firebase ID token. *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseProvider is the hosted-auth variant of the identity collaborator:
// the caller hands it Firebase ID tokens, it verifies them and emits
// User{uid} identities. Drop-in replacement for Service when the storefront
// runs against Firebase Auth instead of the local users.json dataset.
type FirebaseProvider struct {
	client TokenVerifier

	mu      sync.Mutex
	current iddom.Identity

	subMu   sync.Mutex
	subs    map[int]func(iddom.Identity)
	nextSub int
}

func NewFirebaseProvider(client TokenVerifier) *FirebaseProvider {
	return &FirebaseProvider{
		client:  client,
		current: iddom.Guest(),
		subs:    map[int]func(iddom.Identity){},
	}
}

// SignInWithToken verifies the ID token and activates the user identity.
func (p *FirebaseProvider) SignInWithToken(ctx context.Context, idToken string) (iddom.Identity, error) {
	if p == nil || p.client == nil {
		return iddom.Guest(), errors.New("auth: firebase client is nil")
	}

	tok := strings.TrimSpace(idToken)
	if tok == "" {
		return iddom.Guest(), ErrInvalidIDToken
	}

	verified, err := p.client.VerifyIDToken(ctx, tok)
	if err != nil {
		return iddom.Guest(), ErrInvalidIDToken
	}
	uid := strings.TrimSpace(verified.UID)
	if uid == "" {
		return iddom.Guest(), ErrInvalidIDToken
	}

	id := iddom.User(uid)
	p.mu.Lock()
	p.current = id
	p.mu.Unlock()
	p.emit(id)
	return id, nil
}

// SignOut reverts to the guest identity.
func (p *FirebaseProvider) SignOut() {
	p.mu.Lock()
	wasGuest := p.current.IsGuest()
	p.current = iddom.Guest()
	p.mu.Unlock()
	if !wasGuest {
		p.emit(iddom.Guest())
	}
}

// ─────────────────────────────────
// identity.Provider
// ─────────────────────────────────

func (p *FirebaseProvider) Current() iddom.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *FirebaseProvider) IsAuthenticated() bool {
	return !p.Current().IsGuest()
}

func (p *FirebaseProvider) Subscribe(fn func(iddom.Identity)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	p.subMu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.subMu.Unlock()

	fn(p.Current())

	var once sync.Once
	return func() {
		once.Do(func() {
			p.subMu.Lock()
			delete(p.subs, id)
			p.subMu.Unlock()
		})
	}
}

func (p *FirebaseProvider) emit(id iddom.Identity) {
	p.subMu.Lock()
	fns := make([]func(iddom.Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
