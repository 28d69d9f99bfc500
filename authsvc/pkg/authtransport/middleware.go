package authtransport

import (
	"context"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authservice"
)

// NewAuthenticator returns an endpoint middleware that verifies the bearer
// token placed in the context by kitjwt.HTTPToContext and stores the
// resulting identity for downstream layers. Requests without a verifiable
// token never reach the wrapped endpoint.
func NewAuthenticator(t authservice.Tokenizer) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			token, ok := ctx.Value(kitjwt.JWTContextKey).(string)
			if !ok {
				return nil, authsvc.ErrTokenContextMissing
			}

			identity, err := t.Verify(token)
			if err != nil {
				return nil, err
			}

			return next(authsvc.ContextWithIdentity(ctx, identity), request)
		}
	}
}
