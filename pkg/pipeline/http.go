package pipeline

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// FromHTTPRequest adapts a net/http request. Relative request targets are
// resolved against the Host header, using TLS or X-Forwarded-Proto for the scheme.
func FromHTTPRequest(r *http.Request) (*Request[*http.Request], error) {
	if r == nil || r.URL == nil {
		return nil, ErrNilRequest
	}

	uri := *r.URL
	if !uri.IsAbs() {
		uri.Scheme = requestScheme(r)
	}
	if uri.Host == "" {
		uri.Host = r.Host
	}

	req, err := NewRequest(r, r.Method, &uri)
	if err != nil {
		return nil, err
	}

	// http.Header is a map, sort names to keep the pipeline order deterministic
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	slices.Sort(names)
	headers := make([]Header, 0, len(names))
	for _, name := range names {
		headers = append(headers, NewHeader(name, r.Header[name]...))
	}

	httpCookies := r.Cookies()
	cookies := make([]Cookie, 0, len(httpCookies))
	for _, c := range httpCookies {
		cookies = append(cookies, CookieFromHTTP(c))
	}

	params, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, err
	}

	return req.WithHeaders(headers...).WithCookies(cookies...).WithQueryParams(params...), nil
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	switch proto := strings.ToLower(r.Header.Get(HeaderXForwardedProto)); proto {
	case "http", "https":
		return proto
	}
	return "http"
}

// parseQuery keeps the wire order of names and values, unlike url.ParseQuery.
func parseQuery(raw string) ([]QueryParam, error) {
	var params []QueryParam
	for part := range strings.SplitSeq(raw, "&") {
		if part == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(part, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, errors.Join(ErrMalformedQuery, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Join(ErrMalformedQuery, err)
		}
		params = append(params, NewQueryParam(name, value))
	}
	return params, nil
}

// FromResponseWriter starts an empty response pipeline for w.
func FromResponseWriter(w http.ResponseWriter) *Response[http.ResponseWriter] {
	return NewResponse(w)
}

// CopyHeaders writes the pipeline headers and cookies onto the wrapped writer
// without sending the status line.
func CopyHeaders(resp *Response[http.ResponseWriter]) {
	w := resp.Unbox()
	for _, h := range resp.headers {
		w.Header()[h.name] = slices.Clone(h.values)
	}
	for _, c := range resp.cookies {
		http.SetCookie(w, c.HTTPCookie())
	}
}

// WriteHTTP copies headers and cookies and sends the status code.
func WriteHTTP(resp *Response[http.ResponseWriter]) {
	CopyHeaders(resp)
	resp.Unbox().WriteHeader(resp.status)
}
