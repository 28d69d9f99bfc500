package authsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(1, 1))
	assert.ErrorIs(t, Authorize(1, 2), ErrAccessDenied)
	assert.ErrorIs(t, Authorize(2, 1), ErrAccessDenied)
}

func TestIdentityFromContext(t *testing.T) {
	_, err := IdentityFromContext(context.Background())
	assert.ErrorIs(t, err, ErrIdentityContextMissing)

	want := Identity{UserID: 42, Email: "a@x.com"}
	ctx := ContextWithIdentity(context.Background(), want)

	got, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "email", Reason: "must be between 3 and 255 characters"}
	assert.Equal(t, "email must be between 3 and 255 characters", err.Error())
}
