package authn

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/authgate/pkg/fingerprint"
)

// Option is a functional option for configuring the Gate
type Option func(*Gate)

// WithTransport replaces the default "Authorization: Bearer" transport.
func WithTransport(t Transport) Option {
	return func(g *Gate) {
		if t != nil {
			g.transport = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// Optional lets requests without a token through unauthenticated.
// Requests with a token are still validated and rejected when invalid.
func Optional() Option {
	return func(g *Gate) {
		g.optional = true
	}
}

// WithFingerprintCheck binds authenticators to the client fingerprint computed
// with h. A nil hasher uses fingerprint.Default.
func WithFingerprintCheck(h fingerprint.Hasher) Option {
	return func(g *Gate) {
		if h == nil {
			h = fingerprint.Default()
		}
		g.fingerprint = h
	}
}

// WithClientIPCheck binds authenticators to the client IP resolved from headers
// (clientip.DefaultHeaders when none are given).
func WithClientIPCheck(headers ...string) Option {
	return func(g *Gate) {
		g.checkIP = true
		g.ipHeaders = headers
	}
}

// WithValidationTimeout bounds the validation of one request.
func WithValidationTimeout(d time.Duration) Option {
	return func(g *Gate) {
		g.timeout = d
	}
}

// WithErrorHandler replaces the default JSON error responses.
func WithErrorHandler(h ErrorHandler) Option {
	return func(g *Gate) {
		if h != nil {
			g.onError = h
		}
	}
}

// WithDecisionObserver reports every decision, e.g. to metrics.Observer.
func WithDecisionObserver(o DecisionObserver) Option {
	return func(g *Gate) {
		if o != nil {
			g.decisions = o
		}
	}
}
