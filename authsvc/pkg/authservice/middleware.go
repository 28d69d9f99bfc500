package authservice

import (
	"context"

	"github.com/go-kit/log"
	"github.com/ichigozero/todokit/backend/usersvc"
)

type Middleware func(Service) Service

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

// Passwords and issued tokens are never logged.

func (mw loggingMiddleware) SignUp(ctx context.Context, email, password string) (token string, user usersvc.User, err error) {
	defer func() {
		mw.logger.Log("method", "SignUp", "email", email, "user_id", user.ID, "err", err)
	}()
	return mw.next.SignUp(ctx, email, password)
}

func (mw loggingMiddleware) SignIn(ctx context.Context, email, password string) (token string, user usersvc.User, err error) {
	defer func() {
		mw.logger.Log("method", "SignIn", "email", email, "err", err)
	}()
	return mw.next.SignIn(ctx, email, password)
}

func (mw loggingMiddleware) SignOut(ctx context.Context) (message string, err error) {
	defer func() {
		mw.logger.Log("method", "SignOut", "err", err)
	}()
	return mw.next.SignOut(ctx)
}
