package guard

import "context"

// principalKey is the unexported context key holding the resolved Principal.
type principalKey struct{}

// WithPrincipal stores the resolved principal in ctx for the rest of the
// request. Called by the auth middleware.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromCtx returns the principal resolved for this request, or nil when the
// request never passed the auth middleware.
func FromCtx(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
