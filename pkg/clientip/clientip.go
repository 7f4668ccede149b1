package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/dmitrymomot/authgate/pkg/pipeline"
)

// DefaultHeaders is the header priority used by GetIP and FromPipeline.
// X-Forwarded-For is scanned left to right for the first valid address.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// HeaderFunc returns the first value of a request header, or "".
type HeaderFunc func(name string) string

// Resolve picks the client address from headers in priority order and falls
// back to remoteAddr. The result is normalized (IPv4-mapped IPv6 addresses
// are unmapped) and is "" when no valid address is found.
func Resolve(remoteAddr string, header HeaderFunc, headers ...string) string {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}

	for _, name := range headers {
		value := header(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return parseIP(remoteAddr)
	}
	return parseIP(host)
}

// GetIP returns the client IP of r using DefaultHeaders.
func GetIP(r *http.Request) string {
	return Resolve(r.RemoteAddr, r.Header.Get)
}

// FromPipeline returns the client IP of a net/http request pipeline. Header
// values are read from the pipeline, so upstream header rewrites are honored.
func FromPipeline(req *pipeline.Request[*http.Request], headers ...string) string {
	var remoteAddr string
	if native := req.Unbox(); native != nil {
		remoteAddr = native.RemoteAddr
	}

	return Resolve(remoteAddr, func(name string) string {
		h, ok := req.Header(name)
		if !ok || len(h.Values) == 0 {
			return ""
		}
		return h.Values[0]
	}, headers...)
}

// parseIP returns the canonical form of s, or "" if s is not a plain IP address.
func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil || addr.Zone() != "" {
		return ""
	}
	return addr.Unmap().String()
}
