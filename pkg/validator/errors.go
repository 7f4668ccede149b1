package validator

import "errors"

// Reasons an authenticator can be rejected.
var (
	ErrExpired = ValidationError{
		Code:    "authenticator.expired",
		Message: "authenticator has expired",
	}
	ErrIdleTimeout = ValidationError{
		Code:    "authenticator.idle_timeout",
		Message: "authenticator was idle for too long",
	}
	ErrNotFoundInStore = ValidationError{
		Code:    "authenticator.not_found_in_store",
		Message: "authenticator not found or revoked in backing store",
	}
	ErrFingerprintMismatch = ValidationError{
		Code:    "authenticator.fingerprint_mismatch",
		Message: "client fingerprint does not match authenticator",
	}
	ErrClientIPMismatch = ValidationError{
		Code:    "authenticator.client_ip_mismatch",
		Message: "client ip does not match authenticator",
	}
)

// Infrastructure errors: validity could not be determined.
var (
	ErrStoreUnavailable     = errors.New("validator: backing store unavailable")
	ErrValidationIncomplete = errors.New("validator: authenticator validity could not be determined")
)
