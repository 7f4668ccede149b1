package requestid

import "context"

type contextKey struct{}

// SetRequestIDToContext stores id in ctx.
func SetRequestIDToContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// GetRequestIDFromContext returns the stored request id or "".
func GetRequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
