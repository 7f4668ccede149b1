// Package pipeline wraps inbound requests and outbound responses in immutable,
// framework-agnostic values with well-defined merge rules.
//
// A Request is created once per inbound request by a framework adapter and
// never changes afterwards. Every With* method returns a fresh, independent
// value, so a pipeline can be shared between goroutines without locking.
//
// # Merge rules
//
//   - WithHeaders: headers sharing a name within one call are concatenated in
//     argument order into a single header that replaces the existing one in
//     place. Unknown names are appended. Header names are case-insensitive.
//   - WithCookies: replace by name, the last cookie in argument order wins.
//   - WithQueryParams: same as headers, names are case-sensitive.
//
// # Usage
//
//	req, err := pipeline.FromHTTPRequest(r)
//	if err != nil {
//	    http.Error(w, "bad request", http.StatusBadRequest)
//	    return
//	}
//
//	req = req.WithHeaders(pipeline.NewHeader("X-Trace", "a"))
//	fp := req.Fingerprint()
//	raw := req.RawQueryString() // "q=1&q=2"
//
// Response values follow the same discipline and are flushed to a
// http.ResponseWriter with WriteHTTP or CopyHeaders.
//
// # Error Handling
//
// Only the adapters return errors (ErrNilRequest, ErrRelativeURI,
// ErrMalformedQuery). Everything operating on an existing pipeline is total.
package pipeline
