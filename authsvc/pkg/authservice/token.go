package authservice

import (
	"strconv"
	"time"

	stdjwt "github.com/golang-jwt/jwt/v4"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/twinj/uuid"
)

// Claims is the token payload: the subject user ID plus the account email.
type Claims struct {
	Email string `json:"email"`
	stdjwt.RegisteredClaims
}

// Tokenizer issues and verifies self-contained identity tokens. A token is
// valid from issuance until its embedded expiry; the only global revocation
// is rotating the signing secret.
type Tokenizer interface {
	Issue(userID uint64, email string) (string, error)
	Verify(token string) (authsvc.Identity, error)
}

type tokenizer struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenizer(secret []byte, lifetime time.Duration) Tokenizer {
	return &tokenizer{secret: secret, lifetime: lifetime}
}

func (t *tokenizer) Issue(userID uint64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: stdjwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  stdjwt.NewNumericDate(now),
			ExpiresAt: stdjwt.NewNumericDate(now.Add(t.lifetime)),
			ID:        uuid.NewV4().String(),
		},
	}

	return stdjwt.NewWithClaims(stdjwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify decodes and validates a signed token. A bad signature, a malformed
// payload and an expired token are deliberately indistinguishable to the
// caller.
func (t *tokenizer) Verify(token string) (authsvc.Identity, error) {
	var claims Claims

	parsed, err := stdjwt.ParseWithClaims(token, &claims, func(tk *stdjwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*stdjwt.SigningMethodHMAC); !ok {
			return nil, authsvc.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return authsvc.Identity{}, authsvc.ErrInvalidToken
	}

	if claims.Subject == "" || claims.Email == "" {
		return authsvc.Identity{}, authsvc.ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return authsvc.Identity{}, authsvc.ErrInvalidToken
	}

	return authsvc.Identity{UserID: userID, Email: claims.Email}, nil
}
