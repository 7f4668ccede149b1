package store

import "errors"

var ErrInvalidAuthenticator = errors.New("store: authenticator id is required")
