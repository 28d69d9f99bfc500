package authtransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authendpoint"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authservice"
	"github.com/ichigozero/todokit/backend/usersvc"
	"golang.org/x/time/rate"
)

// NewHTTPHandler mounts the account routes. Signup and signin share a
// limiter to slow down credential stuffing; signout requires a verified
// bearer token.
func NewHTTPHandler(endpoints authendpoint.Set, tokenizer authservice.Tokenizer, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
	}

	limiter := rate.NewLimiter(rate.Every(time.Second), 20)

	var signUpEndpoint endpoint.Endpoint
	{
		signUpEndpoint = endpoints.SignUpEndpoint
		signUpEndpoint = ratelimit.NewErroringLimiter(limiter)(signUpEndpoint)
	}

	signUpHandler := httptransport.NewServer(
		signUpEndpoint,
		decodeHTTPSignUpRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var signInEndpoint endpoint.Endpoint
	{
		signInEndpoint = endpoints.SignInEndpoint
		signInEndpoint = ratelimit.NewErroringLimiter(limiter)(signInEndpoint)
	}

	signInHandler := httptransport.NewServer(
		signInEndpoint,
		decodeHTTPSignInRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var signOutEndpoint endpoint.Endpoint
	{
		signOutEndpoint = endpoints.SignOutEndpoint
		signOutEndpoint = NewAuthenticator(tokenizer)(signOutEndpoint)
	}

	signOutHandler := httptransport.NewServer(
		signOutEndpoint,
		decodeHTTPSignOutRequest,
		encodeHTTPGenericResponse,
		append(options, httptransport.ServerBefore(kitjwt.HTTPToContext()))...,
	)

	r := mux.NewRouter()

	r.Methods("POST").Path("/auth/signup").Handler(signUpHandler)
	r.Methods("POST").Path("/auth/signin").Handler(signInHandler)
	r.Methods("POST").Path("/auth/signout").Handler(signOutHandler)

	return r
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	code := err2code(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorWrapper{Error: err.Error()})
}

type errorWrapper struct {
	Error string `json:"error"`
}

func err2code(err error) int {
	var fieldErr *authsvc.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, usersvc.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, authsvc.ErrInvalidCredentials),
		errors.Is(err, authsvc.ErrInvalidToken),
		errors.Is(err, authsvc.ErrTokenContextMissing),
		errors.Is(err, authsvc.ErrIdentityContextMissing):
		return http.StatusUnauthorized
	case errors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func decodeHTTPSignUpRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req authendpoint.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &authsvc.FieldError{Field: "body", Reason: "must be valid JSON"}
	}
	return req, nil
}

func decodeHTTPSignInRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req authendpoint.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &authsvc.FieldError{Field: "body", Reason: "must be valid JSON"}
	}
	return req, nil
}

func decodeHTTPSignOutRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return authendpoint.SignOutRequest{}, nil
}

type statusCoder interface {
	StatusCode() int
}

func encodeHTTPGenericResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}

	code := http.StatusOK
	if sc, ok := response.(statusCoder); ok {
		code = sc.StatusCode()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return nil
	}
	return json.NewEncoder(w).Encode(response)
}
