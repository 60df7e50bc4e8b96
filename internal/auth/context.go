package auth

import "context"

type ctxKey int

const usernameKey ctxKey = iota

// ContextWithUsername marks the request context as authenticated.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns the logged-in user's name, or "" for an
// anonymous request.
func UsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}
