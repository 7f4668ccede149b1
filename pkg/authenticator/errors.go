package authenticator

import "errors"

var ErrNotFound = errors.New("authenticator.not_found")
