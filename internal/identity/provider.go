package identity

import "errors"

// ErrMissingUser signals an operation attempted without a resolved user id.
// It is a precondition failure, not a recoverable checkout error.
var ErrMissingUser = errors.New("no active user")

// Provider supplies the active user identity. Loading is true while the
// identity layer has not yet resolved a user; an empty id with loading
// false means no one is signed in.
type Provider interface {
	ActiveUser() (id string, loading bool)
}

// Static is a fixed-identity provider for tests and single-user embeddings.
type Static struct {
	ID string
}

func (s Static) ActiveUser() (string, bool) {
	return s.ID, false
}
