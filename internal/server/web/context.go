package web

import (
	"context"

	"github.com/dishdash/dishdash/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal returns a copy of ctx carrying p. A nil p records that the
// request was resolved as anonymous.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal stored by the gate, or nil.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := lookupPrincipal(ctx)
	return p
}

// lookupPrincipal also reports whether the gate resolved the request at all.
func lookupPrincipal(ctx context.Context) (*models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*models.Principal)
	return p, ok
}
