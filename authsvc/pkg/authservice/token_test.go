package authservice

import (
	"testing"
	"time"

	stdjwt "github.com/golang-jwt/jwt/v4"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestTokenRoundTrip(t *testing.T) {
	tk := NewTokenizer(testSecret, 7*24*time.Hour)

	token, err := tk.Issue(42, "a@x.com")
	require.NoError(t, err)

	identity, err := tk.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), identity.UserID)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestTokenExpired(t *testing.T) {
	tk := NewTokenizer(testSecret, -time.Minute)

	token, err := tk.Issue(42, "a@x.com")
	require.NoError(t, err)

	_, err = tk.Verify(token)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenizer([]byte("another-secret-another-secret-xx"), time.Hour)
	verifier := NewTokenizer(testSecret, time.Hour)

	token, err := issuer.Issue(42, "a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	tk := NewTokenizer(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tk.Verify(token)
		assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
	}
}

func TestTokenMissingClaims(t *testing.T) {
	tk := NewTokenizer(testSecret, time.Hour)

	sign := func(claims Claims) string {
		token, err := stdjwt.NewWithClaims(stdjwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)
		return token
	}

	expiry := stdjwt.NewNumericDate(time.Now().Add(time.Hour))

	// Missing email claim.
	noEmail := sign(Claims{RegisteredClaims: stdjwt.RegisteredClaims{Subject: "42", ExpiresAt: expiry}})
	_, err := tk.Verify(noEmail)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)

	// Missing subject claim.
	noSubject := sign(Claims{Email: "a@x.com", RegisteredClaims: stdjwt.RegisteredClaims{ExpiresAt: expiry}})
	_, err = tk.Verify(noSubject)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)

	// Non-numeric subject claim.
	badSubject := sign(Claims{Email: "a@x.com", RegisteredClaims: stdjwt.RegisteredClaims{Subject: "abc", ExpiresAt: expiry}})
	_, err = tk.Verify(badSubject)
	assert.ErrorIs(t, err, authsvc.ErrInvalidToken)
}
