package fingerprint

import "net/http"

// Middleware stores the default fingerprint in the request context.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWith(Default())(next)
}

// MiddlewareWith is Middleware with a custom hasher.
func MiddlewareWith(h Hasher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetFingerprintToContext(r.Context(), FromRequestWith(h, r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
