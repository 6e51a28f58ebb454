package models

import "time"

// User represents a registered user account.
//
// Users are never created explicitly. The first authenticated request for an
// identity upserts a User keyed by its TokenIdentifier.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// TokenIdentifier is the subject issued by the external identity provider.
	TokenIdentifier string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address.
	// Used for payment reminders.
	Email string

	// ImageURL is an optional profile picture reference.
	ImageURL string

	// PaymentHandle is an optional UPI id (name@provider) shown to people who owe this user.
	PaymentHandle string

	// CreatedAt is the Unix millisecond timestamp when the user was first seen.
	CreatedAt int64
}

// NewUser creates a user for a freshly authenticated identity.
func NewUser(tokenIdentifier, name, email, imageURL string) *User {
	return &User{
		TokenIdentifier: tokenIdentifier,
		Name:            name,
		Email:           email,
		ImageURL:        imageURL,
		CreatedAt:       time.Now().UnixMilli(),
	}
}
