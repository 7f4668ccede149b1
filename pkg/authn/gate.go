package authn

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/pipeline"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

// Decision results reported to a DecisionObserver.
const (
	DecisionAuthenticated = "authenticated"
	DecisionAnonymous     = "anonymous"
	DecisionRejected      = "rejected"
	DecisionUnavailable   = "unavailable"
)

// DecisionObserver receives the result of every request passing through a Gate.
type DecisionObserver interface {
	Decision(result string)
}

type noopDecisions struct{}

func (noopDecisions) Decision(string) {}

// ErrorHandler writes the response for a request that was not let through.
// Headers and cookies already set on w (e.g. a discarded token) must be kept.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, status int, err error)

// Gate authenticates requests: it extracts a token, resolves the
// authenticator and runs the validation engine against it.
type Gate struct {
	repo      authenticator.Repository
	engine    *validator.Engine
	transport Transport
	logger    *slog.Logger
	onError   ErrorHandler
	decisions DecisionObserver

	optional    bool
	fingerprint fingerprint.Hasher
	checkIP     bool
	ipHeaders   []string
	timeout     time.Duration
}

// New creates a Gate. Panics if repo or engine is nil.
func New(repo authenticator.Repository, engine *validator.Engine, opts ...Option) *Gate {
	if repo == nil {
		panic("authn: authenticator repository is required")
	}
	if engine == nil {
		panic("authn: validation engine is required")
	}

	g := &Gate{
		repo:      repo,
		engine:    engine,
		transport: NewHeaderTransport(pipeline.HeaderAuthorization),
		logger:    slog.Default(),
		onError:   DefaultErrorHandler,
		decisions: noopDecisions{},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Middleware authenticates every request before calling next.
//
//   - no token: 401, or pass-through when the Gate is Optional
//   - unknown token or invalid authenticator: 401 and the token is discarded
//   - store or validator failure: 503
//   - valid: the authenticator is stored in the request context
//
// With fingerprint checks on, the request fingerprint is stored in the
// context as well, see fingerprint.GetFingerprintFromContext.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := pipeline.FromHTTPRequest(r)
		if err != nil {
			g.logger.DebugContext(ctx, "cannot build request pipeline", logger.Error(err))
			g.onError(w, r, http.StatusBadRequest, errors.Join(ErrMalformedRequest, err))
			return
		}

		if fp := g.Fingerprint(req); fp != "" {
			ctx = fingerprint.SetFingerprintToContext(ctx, fp)
			r = r.WithContext(ctx)
		}

		token, ok := g.transport.Token(req)
		if !ok {
			if g.optional {
				g.decisions.Decision(DecisionAnonymous)
				next.ServeHTTP(w, r)
				return
			}
			g.decisions.Decision(DecisionRejected)
			g.onError(w, r, http.StatusUnauthorized, ErrNoToken)
			return
		}

		a, err := g.Authenticate(ctx, req, token)
		switch {
		case err == nil:
			g.decisions.Decision(DecisionAuthenticated)
			next.ServeHTTP(w, r.WithContext(SetAuthenticatorToContext(ctx, a)))
		case errors.Is(err, ErrUnavailable):
			g.decisions.Decision(DecisionUnavailable)
			g.onError(w, r, http.StatusServiceUnavailable, err)
		default:
			g.decisions.Decision(DecisionRejected)
			pipeline.CopyHeaders(g.transport.Discard(pipeline.FromResponseWriter(w)))
			g.onError(w, r, http.StatusUnauthorized, err)
		}
	})
}

// Authenticate resolves token and validates the authenticator against req.
//
// The error wraps ErrUnknownToken or validator.ValidationErrors when the
// client must re-authenticate, and ErrUnavailable when validity could not be
// determined.
func (g *Gate) Authenticate(ctx context.Context, req *Request, token string) (authenticator.Authenticator, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	a, err := g.repo.Find(ctx, token)
	if errors.Is(err, authenticator.ErrNotFound) {
		return authenticator.Authenticator{}, ErrUnknownToken
	}
	if err != nil {
		g.logger.ErrorContext(ctx, "authenticator lookup failed", logger.Error(err))
		return authenticator.Authenticator{}, errors.Join(ErrUnavailable, err)
	}

	res, err := g.requestEngine(req).Validate(ctx, a)
	if err != nil {
		return authenticator.Authenticator{}, errors.Join(ErrUnavailable, err)
	}
	if !res.IsValid() {
		g.logger.InfoContext(ctx, "authenticator rejected",
			logger.AuthenticatorID(a.ID),
			logger.ValidationCodes(res.Errors().Codes()),
		)
		return authenticator.Authenticator{}, res.Err()
	}

	return a, nil
}

// Embed attaches the token of a to resp through the configured transport.
// The token lives until a expires; an authenticator without expiry gets a
// session-scoped token. An already expired authenticator is never embedded,
// the client is told to drop its token instead.
func (g *Gate) Embed(resp *Response, a authenticator.Authenticator) *Response {
	var ttl time.Duration
	if !a.ExpiresAt.IsZero() {
		ttl = time.Until(a.ExpiresAt)
		if ttl <= 0 {
			return g.transport.Discard(resp)
		}
	}
	return g.transport.Embed(resp, a.ID, ttl)
}

// Discard instructs the client to drop its token.
func (g *Gate) Discard(resp *Response) *Response {
	return g.transport.Discard(resp)
}

// Fingerprint returns the fingerprint a new authenticator for req should be
// bound to, or "" when fingerprint checks are off.
func (g *Gate) Fingerprint(req *Request) string {
	if g.fingerprint == nil {
		return ""
	}
	return req.FingerprintHash(g.fingerprint)
}

// ClientIP returns the IP a new authenticator for req should be bound to,
// or "" when IP checks are off.
func (g *Gate) ClientIP(req *Request) string {
	if !g.checkIP {
		return ""
	}
	return clientip.FromPipeline(req, g.ipHeaders...)
}

func (g *Gate) requestEngine(req *Request) *validator.Engine {
	var extra []validator.Validator
	if g.fingerprint != nil {
		extra = append(extra, validator.Fingerprint(g.Fingerprint(req)))
	}
	if g.checkIP {
		extra = append(extra, validator.ClientIP(g.ClientIP(req)))
	}
	if len(extra) == 0 {
		return g.engine
	}
	return g.engine.Extend(extra...)
}

type errorBody struct {
	Error string   `json:"error"`
	Codes []string `json:"codes,omitempty"`
}

// DefaultErrorHandler responds with {"error": ..., "codes": [...]}. Codes
// list every validation failure. A Retry-After header accompanies 503s.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, status int, err error) {
	body := errorBody{Error: http.StatusText(status)}
	if errs := validator.ExtractValidationErrors(err); len(errs) > 0 {
		body.Codes = errs.Codes()
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	w.Header().Set(pipeline.HeaderContentType, "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
