// internal/domain/identity/identity.go
package identity

import "strings"

// GuestKey is the storage partition used while nobody is signed in.
const GuestKey = "guest"

// Identity is the active storefront principal: either the anonymous guest
// or an authenticated user.
//
// The zero value is Guest. Exactly one identity is active at a time; the
// cart engine keys its persisted snapshot by CartKey().
type Identity struct {
	// UserID is empty for the guest identity.
	UserID string
}

// Guest returns the anonymous identity.
func Guest() Identity { return Identity{} }

// User returns the identity for an authenticated user id.
// A blank id collapses to Guest.
func User(id string) Identity {
	return Identity{UserID: strings.TrimSpace(id)}
}

// IsGuest reports whether no user is signed in.
func (id Identity) IsGuest() bool { return id.UserID == "" }

// CartKey derives the storage partition for this identity:
// "guest" for Guest, the user id otherwise.
func (id Identity) CartKey() string {
	if id.IsGuest() {
		return GuestKey
	}
	return id.UserID
}

// Equal reports whether two identities name the same principal.
func (id Identity) Equal(other Identity) bool { return id.UserID == other.UserID }
