package authn

import "errors"

var (
	ErrNoToken          = errors.New("authn: no authentication token")
	ErrUnknownToken     = errors.New("authn: token does not reference an authenticator")
	ErrUnavailable      = errors.New("authn: authentication temporarily unavailable")
	ErrMalformedRequest = errors.New("authn: malformed request")
)
