package requestctx

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	callerKey    ctxKey = "caller_alias"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithCaller records the authenticated caller's alias.
func WithCaller(ctx context.Context, alias string) context.Context {
	return context.WithValue(ctx, callerKey, alias)
}

func GetCaller(ctx context.Context) (string, bool) {
	alias, ok := ctx.Value(callerKey).(string)
	return alias, ok
}
