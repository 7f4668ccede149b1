package fingerprint

import "context"

type contextKey struct{}

// SetFingerprintToContext stores the fingerprint computed for the current
// request. Middleware and authn.Gate call it so handlers can bind newly
// issued authenticators without hashing the headers again.
func SetFingerprintToContext(ctx context.Context, fp string) context.Context {
	return context.WithValue(ctx, contextKey{}, fp)
}

// GetFingerprintFromContext returns the stored fingerprint or "".
func GetFingerprintFromContext(ctx context.Context) string {
	fp, _ := FromContext(ctx)
	return fp
}

// FromContext reports whether a non-empty fingerprint was stored in ctx.
func FromContext(ctx context.Context) (string, bool) {
	fp, ok := ctx.Value(contextKey{}).(string)
	return fp, ok && fp != ""
}
