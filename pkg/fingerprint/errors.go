package fingerprint

import "errors"

var ErrInvalidKey = errors.New("fingerprint: keyed hasher secret must be 1-64 bytes")
