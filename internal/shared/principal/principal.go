// Package principal carries the authenticated identity through a request.
package principal

import "context"

// Principal is the identity proven by a verified bearer token.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying p.
func WithContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal stored in ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
