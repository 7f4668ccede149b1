package authn

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

type authenticatorContextKey struct{}

// SetAuthenticatorToContext stores a validated authenticator in ctx.
func SetAuthenticatorToContext(ctx context.Context, a authenticator.Authenticator) context.Context {
	return context.WithValue(ctx, authenticatorContextKey{}, a)
}

// GetAuthenticatorFromContext returns the authenticator stored by the middleware.
func GetAuthenticatorFromContext(ctx context.Context) (authenticator.Authenticator, bool) {
	a, ok := ctx.Value(authenticatorContextKey{}).(authenticator.Authenticator)
	return a, ok
}

// MustGetAuthenticatorFromContext panics when the request was not authenticated.
// Use only behind a non-optional Gate.
func MustGetAuthenticatorFromContext(ctx context.Context) authenticator.Authenticator {
	a, ok := GetAuthenticatorFromContext(ctx)
	if !ok {
		panic("authn: authenticator not found in context")
	}
	return a
}

// LoggerExtractor adds authenticator_id to records logged with an
// authenticated request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		a, ok := GetAuthenticatorFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.AuthenticatorID(a.ID), true
	}
}
