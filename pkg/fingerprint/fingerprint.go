package fingerprint

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Generate hashes the client tuple "userAgent:acceptLanguage:acceptCharset".
// Missing values are passed as empty strings so the tuple keeps its shape.
// Accept and Accept-Encoding are left out on purpose: they change with
// content negotiation for the same browser and would cause false mismatches.
func Generate(h Hasher, userAgent, acceptLanguage, acceptCharset string) string {
	return h.Sum(strings.Join([]string{userAgent, acceptLanguage, acceptCharset}, ":"))
}

// FromRequest generates the default fingerprint for a net/http request.
func FromRequest(r *http.Request) string {
	return FromRequestWith(Default(), r)
}

// FromRequestWith generates a fingerprint for r using h. Repeated header
// lines are joined with "," so the result matches the pipeline fingerprint.
func FromRequestWith(h Hasher, r *http.Request) string {
	return Generate(h,
		headerValue(r.Header, "User-Agent"),
		headerValue(r.Header, "Accept-Language"),
		headerValue(r.Header, "Accept-Charset"),
	)
}

func headerValue(h http.Header, name string) string {
	return strings.Join(h.Values(name), ",")
}

// Validate compares the current request fingerprint with a stored one in constant time.
func Validate(r *http.Request, stored string) bool {
	return Equal(FromRequest(r), stored)
}

// Equal compares two fingerprints in constant time. Empty values never match.
func Equal(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
