package pipeline

import (
	"net/textproto"
	"slices"
)

// Well-known header names in canonical form.
const (
	HeaderAccept          = "Accept"
	HeaderAcceptCharset   = "Accept-Charset"
	HeaderAcceptEncoding  = "Accept-Encoding"
	HeaderAcceptLanguage  = "Accept-Language"
	HeaderAuthorization   = "Authorization"
	HeaderContentType     = "Content-Type"
	HeaderCookie          = "Cookie"
	HeaderLocation        = "Location"
	HeaderSetCookie       = "Set-Cookie"
	HeaderUserAgent       = "User-Agent"
	HeaderXForwardedProto = "X-Forwarded-Proto"
)

// Header is a single named header with its ordered values.
type Header struct {
	Name   string
	Values []string
}

// NewHeader builds a header with a canonicalised name.
func NewHeader(name string, values ...string) Header {
	return Header{Name: CanonicalHeaderName(name), Values: slices.Clone(values)}
}

// CanonicalHeaderName returns the case-insensitive canonical form of name,
// e.g. "user-agent" becomes "User-Agent".
func CanonicalHeaderName(name string) string {
	return textproto.CanonicalMIMEHeaderKey(name)
}

// Value returns the first value or an empty string.
func (h Header) Value() string {
	if len(h.Values) == 0 {
		return ""
	}
	return h.Values[0]
}

// QueryParam is a query-string parameter with all its occurrences in order.
type QueryParam struct {
	Name   string
	Values []string
}

// NewQueryParam builds a query parameter. Names are case-sensitive.
func NewQueryParam(name string, values ...string) QueryParam {
	return QueryParam{Name: name, Values: slices.Clone(values)}
}

// entry is the shared storage shape of headers and query parameters.
type entry struct {
	name   string
	values []string
}

func findEntry(entries []entry, name string) (entry, bool) {
	for _, e := range entries {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}

// mergeConcat applies the header/query merge rule: values of same-name updates
// are concatenated in argument order and replace the existing entry in place,
// names not seen before are appended. Updates without values are ignored.
// The result never shares backing arrays with current.
func mergeConcat(current, updates []entry) []entry {
	merged := make(map[string][]string, len(updates))
	order := make([]string, 0, len(updates))
	for _, u := range updates {
		if len(u.values) == 0 {
			continue
		}
		if _, ok := merged[u.name]; !ok {
			order = append(order, u.name)
		}
		merged[u.name] = append(merged[u.name], u.values...)
	}

	result := make([]entry, 0, len(current)+len(order))
	replaced := make(map[string]bool, len(order))
	for _, e := range current {
		if values, ok := merged[e.name]; ok {
			result = append(result, entry{name: e.name, values: values})
			replaced[e.name] = true
			continue
		}
		result = append(result, entry{name: e.name, values: slices.Clone(e.values)})
	}
	for _, name := range order {
		if !replaced[name] {
			result = append(result, entry{name: name, values: merged[name]})
		}
	}
	return result
}

func headerEntries(headers []Header) []entry {
	entries := make([]entry, 0, len(headers))
	for _, h := range headers {
		entries = append(entries, entry{name: CanonicalHeaderName(h.Name), values: h.Values})
	}
	return entries
}

func queryEntries(params []QueryParam) []entry {
	entries := make([]entry, 0, len(params))
	for _, p := range params {
		entries = append(entries, entry{name: p.Name, values: p.Values})
	}
	return entries
}

func toHeaders(entries []entry) []Header {
	headers := make([]Header, 0, len(entries))
	for _, e := range entries {
		headers = append(headers, Header{Name: e.name, Values: slices.Clone(e.values)})
	}
	return headers
}

func toQueryParams(entries []entry) []QueryParam {
	params := make([]QueryParam, 0, len(entries))
	for _, e := range entries {
		params = append(params, QueryParam{Name: e.name, Values: slices.Clone(e.values)})
	}
	return params
}
