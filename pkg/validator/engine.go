package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/authgate/pkg/async"
	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Engine runs a set of independent validators against one authenticator and
// folds every outcome into a single Result.
type Engine struct {
	validators []Validator
	logger     *slog.Logger
	observer   Observer
	timeout    time.Duration
}

// Option is a functional option for configuring the Engine
type Option func(*Engine)

// WithLogger sets the logger used for validation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an observer notified after every validator run.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithTimeout bounds a whole validation run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// NewEngine creates an engine over validators.
func NewEngine(validators []Validator, opts ...Option) *Engine {
	e := &Engine{
		validators: slices.DeleteFunc(slices.Clone(validators), func(v Validator) bool { return v == nil }),
		logger:     slog.Default(),
		observer:   noopObserver{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Compose creates an engine with default options.
func Compose(validators ...Validator) *Engine {
	return NewEngine(validators)
}

// Extend returns a new engine sharing the options of e with validators appended.
// Used for request-scoped checks such as fingerprint or client IP.
func (e *Engine) Extend(validators ...Validator) *Engine {
	c := *e
	c.validators = slices.Concat(e.validators, slices.DeleteFunc(slices.Clone(validators), func(v Validator) bool { return v == nil }))
	return &c
}

// Len returns the number of validators.
func (e *Engine) Len() int { return len(e.validators) }

type timedResult struct {
	result  Result
	elapsed time.Duration
}

// Validate runs every validator concurrently and waits for all of them.
//
// The result is valid only if every validator reported valid. Otherwise it
// carries the errors of all failing validators, in validator order, without
// deduplication. A validator that could not decide (returned an error or
// panicked) does not contribute to the result; instead the returned error
// wraps ErrValidationIncomplete and every such failure. Callers must check
// the error before trusting a valid result.
//
// If ctx is done before all validators finish, the outstanding ones are
// cancelled and Validate returns immediately with the context error.
func (e *Engine) Validate(ctx context.Context, a authenticator.Authenticator) (Result, error) {
	if len(e.validators) == 0 {
		return Valid(), nil
	}

	var cancel context.CancelFunc
	if e.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	futures := make([]*async.Future[timedResult], len(e.validators))
	for i, v := range e.validators {
		futures[i] = async.Async(ctx, v, func(ctx context.Context, v Validator) (timedResult, error) {
			start := time.Now()
			res, err := v.IsValid(ctx, a)
			return timedResult{result: res, elapsed: time.Since(start)}, err
		})
	}

	settled, err := async.Settle(ctx, futures...)
	if err != nil {
		e.logger.WarnContext(ctx, "authenticator validation abandoned",
			logger.AuthenticatorID(a.ID),
			logger.Error(err),
		)
		return Result{}, errors.Join(ErrValidationIncomplete, err)
	}

	var (
		errs     ValidationErrors
		failures []error
	)
	for i, s := range settled {
		name := e.name(i)
		switch {
		case s.Err != nil:
			e.observer.Observe(name, OutcomeError, s.Value.elapsed)
			failures = append(failures, fmt.Errorf("%s: %w", name, s.Err))
			errs = append(errs, s.Value.result.errs...)
		case s.Value.result.IsValid():
			e.observer.Observe(name, OutcomeValid, s.Value.elapsed)
		default:
			e.observer.Observe(name, OutcomeInvalid, s.Value.elapsed)
			errs = append(errs, s.Value.result.errs...)
		}
	}

	result := Result{errs: errs}

	if len(failures) > 0 {
		err := errors.Join(append([]error{ErrValidationIncomplete}, failures...)...)
		e.logger.ErrorContext(ctx, "authenticator validation incomplete",
			logger.AuthenticatorID(a.ID),
			logger.ValidationCodes(errs.Codes()),
			logger.Error(err),
		)
		return result, err
	}

	if !result.IsValid() {
		e.logger.DebugContext(ctx, "authenticator rejected",
			logger.AuthenticatorID(a.ID),
			logger.Principal(a.LoginInfo.String()),
			logger.ValidationCodes(errs.Codes()),
		)
	}

	return result, nil
}

func (e *Engine) name(i int) string {
	if n, ok := e.validators[i].(Namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("validator_%d", i)
}
