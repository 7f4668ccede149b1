package pipeline

import (
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/authgate/pkg/fingerprint"
)

// Request is an immutable view over a framework-native request R.
type Request[R any] struct {
	uri     *url.URL
	method  string
	headers []entry
	cookies []Cookie
	query   []entry
	native  R
}

// NewRequest creates a pipeline around native. The uri must be absolute;
// adapters are expected to resolve it before calling.
func NewRequest[R any](native R, method string, uri *url.URL) (*Request[R], error) {
	if uri == nil || !uri.IsAbs() || uri.Host == "" {
		return nil, ErrRelativeURI
	}
	return &Request[R]{
		uri:    cloneURL(uri),
		method: strings.ToUpper(method),
		native: native,
	}, nil
}

func (r *Request[R]) clone() *Request[R] {
	c := *r
	return &c
}

// URI returns a copy of the absolute request URI.
func (r *Request[R]) URI() *url.URL { return cloneURL(r.uri) }

// WithURI returns a new pipeline pointing at u. A nil or relative u leaves
// the URI unchanged.
func (r *Request[R]) WithURI(u *url.URL) *Request[R] {
	if u == nil || !u.IsAbs() || u.Host == "" {
		return r
	}
	c := r.clone()
	c.uri = cloneURL(u)
	return c
}

func (r *Request[R]) Method() string { return r.method }

func (r *Request[R]) WithMethod(method string) *Request[R] {
	c := r.clone()
	c.method = strings.ToUpper(method)
	return c
}

// Headers returns all headers in pipeline order.
func (r *Request[R]) Headers() []Header { return toHeaders(r.headers) }

// Header looks up a header by its case-insensitive name.
func (r *Request[R]) Header(name string) (Header, bool) {
	e, ok := findEntry(r.headers, CanonicalHeaderName(name))
	if !ok {
		return Header{}, false
	}
	return Header{Name: e.name, Values: slices.Clone(e.values)}, true
}

// WithHeaders merges headers into a new pipeline, see the package doc for the rule.
func (r *Request[R]) WithHeaders(headers ...Header) *Request[R] {
	c := r.clone()
	c.headers = mergeConcat(r.headers, headerEntries(headers))
	return c
}

func (r *Request[R]) Cookies() []Cookie { return slices.Clone(r.cookies) }

func (r *Request[R]) Cookie(name string) (Cookie, bool) { return findCookie(r.cookies, name) }

// WithCookies merges cookies into a new pipeline. Among cookies sharing a
// name only the last one survives.
func (r *Request[R]) WithCookies(cookies ...Cookie) *Request[R] {
	c := r.clone()
	c.cookies = mergeCookies(r.cookies, cookies)
	return c
}

func (r *Request[R]) QueryParams() []QueryParam { return toQueryParams(r.query) }

func (r *Request[R]) QueryParam(name string) ([]string, bool) {
	e, ok := findEntry(r.query, name)
	if !ok {
		return nil, false
	}
	return slices.Clone(e.values), true
}

// WithQueryParams merges params with the same rule as WithHeaders.
func (r *Request[R]) WithQueryParams(params ...QueryParam) *Request[R] {
	c := r.clone()
	c.query = mergeConcat(r.query, queryEntries(params))
	return c
}

// RawQueryString encodes the query params as name=value pairs joined by "&",
// one pair per value, in pipeline order. There is no leading "?".
func (r *Request[R]) RawQueryString() string {
	var b strings.Builder
	for _, e := range r.query {
		name := url.QueryEscape(e.name)
		for _, v := range e.values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// Fingerprint hashes User-Agent, Accept-Language and Accept-Charset with the
// default hasher.
func (r *Request[R]) Fingerprint() string {
	return r.FingerprintHash(fingerprint.Default())
}

// FingerprintHash is Fingerprint with a caller-supplied hash primitive.
func (r *Request[R]) FingerprintHash(h fingerprint.Hasher) string {
	return fingerprint.Generate(h,
		r.headerValue(HeaderUserAgent),
		r.headerValue(HeaderAcceptLanguage),
		r.headerValue(HeaderAcceptCharset),
	)
}

// FingerprintWith delegates fingerprinting to fn operating on the native request.
func (r *Request[R]) FingerprintWith(fn func(R) string) string {
	return fn(r.native)
}

// IsSecure reports whether the request arrived over https.
func (r *Request[R]) IsSecure() bool {
	if r.uri == nil {
		return false
	}
	return strings.EqualFold(r.uri.Scheme, "https")
}

// Unbox returns the wrapped native request.
func (r *Request[R]) Unbox() R { return r.native }

func (r *Request[R]) headerValue(name string) string {
	e, ok := findEntry(r.headers, name)
	if !ok {
		return ""
	}
	return strings.Join(e.values, ",")
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
