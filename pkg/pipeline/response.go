package pipeline

import (
	"net/http"
	"slices"
)

// Response is the outbound counterpart of Request, following the same merge
// discipline. W is the framework-native response.
type Response[W any] struct {
	status  int
	headers []entry
	cookies []Cookie
	native  W
}

// NewResponse creates an empty response pipeline with status 200.
func NewResponse[W any](native W) *Response[W] {
	return &Response[W]{status: http.StatusOK, native: native}
}

func (r *Response[W]) clone() *Response[W] {
	c := *r
	return &c
}

func (r *Response[W]) Status() int { return r.status }

func (r *Response[W]) WithStatus(status int) *Response[W] {
	c := r.clone()
	c.status = status
	return c
}

func (r *Response[W]) Headers() []Header { return toHeaders(r.headers) }

func (r *Response[W]) Header(name string) (Header, bool) {
	e, ok := findEntry(r.headers, CanonicalHeaderName(name))
	if !ok {
		return Header{}, false
	}
	return Header{Name: e.name, Values: slices.Clone(e.values)}, true
}

func (r *Response[W]) WithHeaders(headers ...Header) *Response[W] {
	c := r.clone()
	c.headers = mergeConcat(r.headers, headerEntries(headers))
	return c
}

func (r *Response[W]) Cookies() []Cookie { return slices.Clone(r.cookies) }

func (r *Response[W]) Cookie(name string) (Cookie, bool) { return findCookie(r.cookies, name) }

func (r *Response[W]) WithCookies(cookies ...Cookie) *Response[W] {
	c := r.clone()
	c.cookies = mergeCookies(r.cookies, cookies)
	return c
}

func (r *Response[W]) Unbox() W { return r.native }
