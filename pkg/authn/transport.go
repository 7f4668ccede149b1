package authn

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/authgate/pkg/cookie"
	"github.com/dmitrymomot/authgate/pkg/pipeline"
)

type (
	// Request is a request pipeline over net/http.
	Request = pipeline.Request[*http.Request]
	// Response is a response pipeline over net/http.
	Response = pipeline.Response[http.ResponseWriter]
)

// Transport defines how authenticator tokens travel between client and server.
type Transport interface {
	// Token extracts the token from the request.
	Token(req *Request) (string, bool)

	// Embed returns resp carrying token.
	Embed(resp *Response, token string, ttl time.Duration) *Response

	// Discard returns resp instructing the client to drop its token.
	Discard(resp *Response) *Response
}

// HeaderTransport carries tokens in a request header, "Authorization: Bearer <token>" by default.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// HeaderOption is a functional option for HeaderTransport
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets the scheme prefix. An empty prefix accepts raw tokens.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{
		headerName: pipeline.CanonicalHeaderName(headerName),
		prefix:     "Bearer ",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Token returns the header value with the prefix removed. The prefix is
// matched case-insensitively; a value with another scheme is ignored.
func (t *HeaderTransport) Token(req *Request) (string, bool) {
	h, ok := req.Header(t.headerName)
	if !ok {
		return "", false
	}

	value := strings.TrimSpace(h.Values[0])
	if t.prefix != "" {
		if len(value) < len(t.prefix) || !strings.EqualFold(value[:len(t.prefix)], t.prefix) {
			return "", false
		}
		value = strings.TrimSpace(value[len(t.prefix):])
	}

	return value, value != ""
}

// Embed sets the header and, for a positive ttl, an RFC 3339 "<name>-Expires" companion.
func (t *HeaderTransport) Embed(resp *Response, token string, ttl time.Duration) *Response {
	headers := []pipeline.Header{pipeline.NewHeader(t.headerName, t.prefix+token)}
	if ttl > 0 {
		headers = append(headers, pipeline.NewHeader(t.headerName+"-Expires", time.Now().Add(ttl).UTC().Format(time.RFC3339)))
	}
	return resp.WithHeaders(headers...)
}

// Discard is a no-op: clients hold header tokens themselves.
func (t *HeaderTransport) Discard(resp *Response) *Response { return resp }

// CookieTransport carries tokens in a signed cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	options []cookie.Option
}

func NewCookieTransport(cookies *cookie.Manager, name string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, options: opts}
}

// Token returns the verified cookie value. Tampered cookies count as missing.
func (t *CookieTransport) Token(req *Request) (string, bool) {
	token, err := t.cookies.GetSigned(req, t.name)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (t *CookieTransport) Embed(resp *Response, token string, ttl time.Duration) *Response {
	opts := t.options
	if ttl > 0 {
		opts = append([]cookie.Option{cookie.WithMaxAge(int(ttl.Seconds()))}, t.options...)
	}
	return cookie.SetSigned(t.cookies, resp, t.name, token, opts...)
}

func (t *CookieTransport) Discard(resp *Response) *Response {
	return cookie.Delete(t.cookies, resp, t.name)
}

// QueryTransport reads tokens from a query parameter, e.g. for WebSocket
// upgrades where headers cannot be set. It never writes tokens back.
type QueryTransport struct {
	param string
}

func NewQueryTransport(param string) *QueryTransport {
	return &QueryTransport{param: param}
}

func (t *QueryTransport) Token(req *Request) (string, bool) {
	values, ok := req.QueryParam(t.param)
	if !ok || values[0] == "" {
		return "", false
	}
	return values[0], true
}

func (t *QueryTransport) Embed(resp *Response, _ string, _ time.Duration) *Response { return resp }

func (t *QueryTransport) Discard(resp *Response) *Response { return resp }

// CompositeTransport reads from the first transport holding a token and
// writes through all of them.
type CompositeTransport struct {
	transports []Transport
}

func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) Token(req *Request) (string, bool) {
	for _, transport := range t.transports {
		if token, ok := transport.Token(req); ok {
			return token, true
		}
	}
	return "", false
}

func (t *CompositeTransport) Embed(resp *Response, token string, ttl time.Duration) *Response {
	for _, transport := range t.transports {
		resp = transport.Embed(resp, token, ttl)
	}
	return resp
}

func (t *CompositeTransport) Discard(resp *Response) *Response {
	for _, transport := range t.transports {
		resp = transport.Discard(resp)
	}
	return resp
}
