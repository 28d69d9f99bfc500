package authendpoint

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/log"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authservice"
	"github.com/ichigozero/todokit/backend/usersvc"
)

type Set struct {
	SignUpEndpoint  endpoint.Endpoint
	SignInEndpoint  endpoint.Endpoint
	SignOutEndpoint endpoint.Endpoint
}

func New(svc authservice.Service, logger log.Logger) Set {
	var signUpEndpoint endpoint.Endpoint
	{
		signUpEndpoint = MakeSignUpEndpoint(svc)
		signUpEndpoint = LoggingMiddleware(log.With(logger, "method", "SignUp"))(signUpEndpoint)
	}

	var signInEndpoint endpoint.Endpoint
	{
		signInEndpoint = MakeSignInEndpoint(svc)
		signInEndpoint = LoggingMiddleware(log.With(logger, "method", "SignIn"))(signInEndpoint)
	}

	var signOutEndpoint endpoint.Endpoint
	{
		signOutEndpoint = MakeSignOutEndpoint(svc)
		signOutEndpoint = LoggingMiddleware(log.With(logger, "method", "SignOut"))(signOutEndpoint)
	}

	return Set{
		SignUpEndpoint:  signUpEndpoint,
		SignInEndpoint:  signInEndpoint,
		SignOutEndpoint: signOutEndpoint,
	}
}

func (s Set) SignUp(ctx context.Context, email, password string) (string, usersvc.User, error) {
	response, err := s.SignUpEndpoint(ctx, SignUpRequest{Email: email, Password: password})
	if err != nil {
		return "", usersvc.User{}, err
	}

	resp := response.(SignUpResponse)
	return resp.Token, resp.User, resp.Err
}

func (s Set) SignIn(ctx context.Context, email, password string) (string, usersvc.User, error) {
	response, err := s.SignInEndpoint(ctx, SignInRequest{Email: email, Password: password})
	if err != nil {
		return "", usersvc.User{}, err
	}

	resp := response.(SignInResponse)
	return resp.Token, resp.User, resp.Err
}

func (s Set) SignOut(ctx context.Context) (string, error) {
	response, err := s.SignOutEndpoint(ctx, SignOutRequest{})
	if err != nil {
		return "", err
	}

	resp := response.(SignOutResponse)
	return resp.Message, resp.Err
}

func MakeSignUpEndpoint(s authservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(SignUpRequest)
		token, user, err := s.SignUp(ctx, req.Email, req.Password)
		return SignUpResponse{Token: token, User: user, Err: err}, nil
	}
}

func MakeSignInEndpoint(s authservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(SignInRequest)
		token, user, err := s.SignIn(ctx, req.Email, req.Password)
		return SignInResponse{Token: token, User: user, Err: err}, nil
	}
}

func MakeSignOutEndpoint(s authservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		_ = request.(SignOutRequest)
		message, err := s.SignOut(ctx)
		return SignOutResponse{Message: message, Err: err}, nil
	}
}

var (
	_ endpoint.Failer = SignUpResponse{}
	_ endpoint.Failer = SignInResponse{}
	_ endpoint.Failer = SignOutResponse{}
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	Token string       `json:"token"`
	User  usersvc.User `json:"user"`
	Err   error        `json:"-"`
}

func (r SignUpResponse) Failed() error   { return r.Err }
func (r SignUpResponse) StatusCode() int { return http.StatusCreated }

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token string       `json:"token"`
	User  usersvc.User `json:"user"`
	Err   error        `json:"-"`
}

func (r SignInResponse) Failed() error { return r.Err }

type SignOutRequest struct{}

type SignOutResponse struct {
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (r SignOutResponse) Failed() error { return r.Err }
