// internal/domain/identity/provider_port.go
package identity

// Provider is the inbound port for the authentication collaborator.
//
// Subscribe delivers the current identity immediately and then every
// subsequent change, in emission order, until the returned cancel func
// is called. Emissions for the same listener never run concurrently.
type Provider interface {
	// Current returns the identity active right now.
	Current() Identity

	// IsAuthenticated reports whether a user (non-guest) is signed in.
	IsAuthenticated() bool

	// Subscribe registers a listener for identity changes.
	// The cancel func is idempotent.
	Subscribe(fn func(Identity)) (cancel func())
}
