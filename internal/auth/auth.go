package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/commerceflow/backend/internal/apperrors"
)

// Role of a resolved identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the resolved caller of a request.
type Identity struct {
	ID    string
	Role  Role
	Email string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Credential failures are distinguished for observability but all wrap
// apperrors.ErrUnauthorized, so every one of them surfaces as a 401.
var (
	ErrMissingCredential   = fmt.Errorf("%w: missing credential", apperrors.ErrUnauthorized)
	ErrMalformedCredential = fmt.Errorf("%w: malformed credential", apperrors.ErrUnauthorized)
	ErrExpiredCredential   = fmt.Errorf("%w: expired credential", apperrors.ErrUnauthorized)
)

// Resolver verifies bearer tokens and produces identities. Token issuance
// lives elsewhere; this side only consumes HMAC-signed JWTs with
// {sub, email, role, exp} claims.
type Resolver struct {
	secret []byte
}

// NewResolver returns a Resolver verifying with the given HMAC secret.
func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Resolve parses an Authorization header value into an Identity.
func (r *Resolver) Resolve(authorizationHeader string) (*Identity, error) {
	if authorizationHeader == "" {
		return nil, ErrMissingCredential
	}

	fields := strings.Fields(authorizationHeader)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
		return nil, ErrMalformedCredential
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(fields[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedCredential, err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrMalformedCredential)
	}
	email, _ := claims["email"].(string)

	role := RoleUser
	if rc, _ := claims["role"].(string); rc == string(RoleAdmin) {
		role = RoleAdmin
	}

	return &Identity{ID: sub, Role: role, Email: email}, nil
}
