// Package middleware provides Connect interceptors for authentication,
// logging and metrics.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cashcrush/internal/auth"
	"github.com/mmynk/cashcrush/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserKey is the context key for storing the authenticated *models.User.
const UserKey contextKey = "user"

// UserStore resolves a verified identity to a stored user, creating it on
// first sight.
type UserStore interface {
	EnsureUser(ctx context.Context, user *models.User) (*models.User, error)
}

// WithUser returns a copy of ctx carrying user as the acting user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUser extracts the acting user from the context.
// Returns nil if not found.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

// GetUserID extracts the acting user's ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	if user := GetUser(ctx); user != nil {
		return user.ID
	}
	return ""
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// RequireAuth returns an interceptor that verifies the bearer token, upserts
// the user it identifies and adds that user to the request context.
func RequireAuth(authenticator auth.Authenticator, users UserStore) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			identity, err := authenticator.Verify(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			user, err := users.EnsureUser(ctx, models.NewUser(
				identity.TokenIdentifier,
				identity.Name,
				identity.Email,
				identity.PictureURL,
			))
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}

			return next(WithUser(ctx, user), req)
		}
	}
}
