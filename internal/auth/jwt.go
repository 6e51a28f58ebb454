package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ensure JWTManager implements Authenticator
var _ Authenticator = (*JWTManager)(nil)

// JWTManager verifies HS256 tokens shared with the identity provider.
// It can also issue tokens, which is used for local development and tests.
type JWTManager struct {
	secretKey []byte
	issuer    string
}

// Claims represents the JWT claims the identity provider sets.
// The user's token identifier is the standard subject claim.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWT manager with the given secret.
// When issuer is non-empty, tokens must carry a matching iss claim.
func NewJWTManager(secretKey, issuer string) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

// Issue creates a token for identity that is valid for ttl.
func (m *JWTManager) Issue(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name:    identity.Name,
		Email:   identity.Email,
		Picture: identity.PictureURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.TokenIdentifier,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify parses and validates a JWT token, returning the identity if valid.
func (m *JWTManager) Verify(tokenString string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return m.secretKey, nil
		},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Identity{
		TokenIdentifier: claims.Subject,
		Name:            claims.Name,
		Email:           claims.Email,
		PictureURL:      claims.Picture,
	}, nil
}
