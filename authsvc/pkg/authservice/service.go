package authservice

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/usersvc"
)

type Service interface {
	SignUp(ctx context.Context, email, password string) (string, usersvc.User, error)
	SignIn(ctx context.Context, email, password string) (string, usersvc.User, error)
	SignOut(ctx context.Context) (string, error)
}

func New(users usersvc.UserRepository, t Tokenizer, logger log.Logger) Service {
	var svc Service
	{
		svc = NewBasicService(users, t)
		svc = LoggingMiddleware(logger)(svc)
	}
	return svc
}

type basicService struct {
	users     usersvc.UserRepository
	tokenizer Tokenizer
}

func NewBasicService(users usersvc.UserRepository, t Tokenizer) Service {
	return &basicService{users: users, tokenizer: t}
}

// dummyHash keeps a signin with an unknown email as expensive as one with a
// wrong password, so the two failures are not separable by timing.
var dummyHash, _ = HashPassword("todokit.dummy.password")

func (s *basicService) SignUp(ctx context.Context, email, password string) (string, usersvc.User, error) {
	if err := validateEmail(email); err != nil {
		return "", usersvc.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return "", usersvc.User{}, err
	}

	// Friendly pre-check only; the unique index decides concurrent signups.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", usersvc.User{}, usersvc.ErrEmailTaken
	} else if !errors.Is(err, usersvc.ErrUserNotFound) {
		return "", usersvc.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", usersvc.User{}, err
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return "", usersvc.User{}, err
	}

	token, err := s.tokenizer.Issue(user.ID, user.Email)
	if err != nil {
		return "", usersvc.User{}, err
	}

	return token, user, nil
}

func (s *basicService) SignIn(ctx context.Context, email, password string) (string, usersvc.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserNotFound) {
			CheckPassword(password, dummyHash)
			return "", usersvc.User{}, authsvc.ErrInvalidCredentials
		}
		return "", usersvc.User{}, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", usersvc.User{}, authsvc.ErrInvalidCredentials
	}

	token, err := s.tokenizer.Issue(user.ID, user.Email)
	if err != nil {
		return "", usersvc.User{}, err
	}

	return token, user, nil
}

// SignOut acknowledges the request. Tokens are stateless, so there is
// nothing to revoke server side; the client must discard its copy.
func (s *basicService) SignOut(ctx context.Context) (string, error) {
	if _, err := authsvc.IdentityFromContext(ctx); err != nil {
		return "", err
	}

	return "signed out successfully", nil
}

func validateEmail(email string) error {
	if len(email) < 3 || len(email) > 255 {
		return &authsvc.FieldError{Field: "email", Reason: "must be between 3 and 255 characters"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return &authsvc.FieldError{Field: "password", Reason: "must be between 8 and 100 characters"}
	}
	return nil
}
