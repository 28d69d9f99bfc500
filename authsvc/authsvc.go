package authsvc

import (
	"context"
	"errors"
	"fmt"
)

// Identity is the verified subject of a request, reconstructed from a bearer
// token. It carries no server-side state.
type Identity struct {
	UserID uint64
	Email  string
}

type contextKey string

const IdentityContextKey contextKey = "Identity"

func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(IdentityContextKey).(Identity)
	if !ok {
		return Identity{}, ErrIdentityContextMissing
	}
	return identity, nil
}

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid authentication credentials")
	ErrTokenContextMissing    = errors.New("token was not passed through the context")
	ErrIdentityContextMissing = errors.New("identity was not passed through the context")
	ErrAccessDenied           = errors.New("cannot access other user's resources")
)

// Authorize checks that the caller may act on resources declared as owned by
// ownerID. Callers must keep scoping store queries by their own token-derived
// ID; a path-supplied owner is only ever validated here, never trusted.
func Authorize(callerID, ownerID uint64) error {
	if callerID != ownerID {
		return ErrAccessDenied
	}
	return nil
}

// FieldError reports input that fails validation bounds. It is raised before
// any persistence is attempted.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
