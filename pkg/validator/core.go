package validator

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
)

// ValidationError describes why one validator rejected an authenticator.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "authenticator invalid"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Message)
	}
	return "authenticator invalid: " + strings.Join(parts, "; ")
}

// Is lets errors.Is match any contained ValidationError by code.
func (ve ValidationErrors) Is(target error) bool {
	t, ok := target.(ValidationError)
	if !ok {
		return false
	}
	return ve.Has(t.Code)
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(code string) bool {
	for _, err := range ve {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the code of every error in order, duplicates included.
func (ve ValidationErrors) Codes() []string {
	codes := make([]string, 0, len(ve))
	for _, err := range ve {
		codes = append(codes, err.Code)
	}
	return codes
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Result is either valid or carries at least one ValidationError.
// The zero value is valid.
type Result struct {
	errs ValidationErrors
}

// Valid returns a passing result.
func Valid() Result { return Result{} }

// Invalid returns a failing result with errs. Without errors it is Valid.
func Invalid(errs ...ValidationError) Result {
	return Result{errs: slices.Clone(errs)}
}

func (r Result) IsValid() bool { return len(r.errs) == 0 }

// Errors returns a copy of the collected validation errors.
func (r Result) Errors() ValidationErrors { return slices.Clone(r.errs) }

// Err returns nil for a valid result and ValidationErrors otherwise.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return r.Errors()
}

// Validator decides whether an authenticator is still acceptable.
//
// A rejected authenticator is reported through an invalid Result with a nil
// error. The error return is reserved for cases where validity could not be
// determined at all, e.g. the backing store timed out.
type Validator interface {
	IsValid(ctx context.Context, a authenticator.Authenticator) (Result, error)
}

// Func adapts a plain function to Validator.
type Func func(ctx context.Context, a authenticator.Authenticator) (Result, error)

func (f Func) IsValid(ctx context.Context, a authenticator.Authenticator) (Result, error) {
	return f(ctx, a)
}

// Namer is implemented by validators that report a stable name for logs and metrics.
type Namer interface {
	Name() string
}

type namedValidator struct {
	Validator
	name string
}

func (n namedValidator) Name() string { return n.name }

// Named attaches a name to v.
func Named(name string, v Validator) Validator {
	return namedValidator{Validator: v, name: name}
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
