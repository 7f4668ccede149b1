// Package fingerprint derives a stable client fingerprint from request headers.
//
// A fingerprint is the hash of the tuple
//
//	User-Agent ":" Accept-Language ":" Accept-Charset
//
// Missing headers contribute an empty string. Accept and Accept-Encoding are
// excluded because browsers vary them between requests (content negotiation,
// compression support), which would make the same client look different.
//
// The hash primitive is pluggable through the Hasher interface:
//
//   - Default – unkeyed xxHash64, 16 hex characters. Fast and stable, not
//     collision resistant.
//   - NewKeyed – BLAKE2b-256 keyed with a server secret, 64 hex characters.
//     Use it when fingerprints are exposed to clients.
//
// # Usage
//
//	fp := fingerprint.FromRequest(r)
//
//	h, err := fingerprint.NewKeyed([]byte(secret))
//	if err != nil {
//	    return err
//	}
//	fp = fingerprint.FromRequestWith(h, r)
//
//	if !fingerprint.Equal(stored, fp) {
//	    // mismatch
//	}
//
// Middleware and MiddlewareWith put the fingerprint into the request context,
// retrieve it with GetFingerprintFromContext.
//
// # Error Handling
//
// Generation never fails. NewKeyed returns ErrInvalidKey for empty or
// oversized secrets.
package fingerprint
