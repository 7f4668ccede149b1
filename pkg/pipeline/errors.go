package pipeline

import "errors"

var (
	ErrNilRequest     = errors.New("pipeline: nil request")
	ErrRelativeURI    = errors.New("pipeline: request uri must be absolute")
	ErrMalformedQuery = errors.New("pipeline: malformed query string")
)
