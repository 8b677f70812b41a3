package auth

import "context"

type userKey struct{}

// WithUserID stamps the authenticated user's id on the context.
// JWTMiddleware sets it from the token's sub claim; submitted results
// record it as the session owner.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFromContext returns the id set by WithUserID, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
