// Package auth verifies bearer tokens issued by an external identity provider.
package auth

import "errors"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Identity is the verified caller as described by the identity provider.
type Identity struct {
	// TokenIdentifier is the provider's stable subject for the user.
	TokenIdentifier string
	Name            string
	Email           string
	PictureURL      string
}

// Authenticator defines the interface for token verification.
// This abstraction allows swapping identity providers without changing the
// middleware or service layer code.
type Authenticator interface {
	// Verify checks the token and returns the identity it asserts.
	// Returns an error wrapping ErrInvalidToken if the token is not acceptable.
	Verify(token string) (*Identity, error)
}
