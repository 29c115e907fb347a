package auth

import "context"

type contextKey struct{}

// WithTokenMeta returns a copy of ctx carrying meta.
func WithTokenMeta(ctx context.Context, meta *TokenMeta) context.Context {
	return context.WithValue(ctx, contextKey{}, meta)
}

// FromContext returns the caller identity, if the request carried a valid token.
func FromContext(ctx context.Context) (*TokenMeta, bool) {
	meta, ok := ctx.Value(contextKey{}).(*TokenMeta)
	return meta, ok && meta != nil
}
