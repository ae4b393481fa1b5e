package auth

import (
	"context"
	"fmt"

	"github.com/perma-museum/custodian/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const principalKey contextKey = "auth_principal"

// WithPrincipal returns a context carrying the proven principal. The API
// middleware stores the JWT subject here after signature verification.
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the proven principal, if any
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok && principal != ""
}

// Oracle proves that the current caller is the principal it claims to be.
// Verification runs before any state is read; failure aborts the invocation.
//
//go:generate mockgen -source=oracle.go -destination=../mocks/oracle.go -package=mocks -mock_names=Oracle=MockOracle
type Oracle interface {
	// Verify returns ErrUnauthorized unless the proven identity of the
	// current caller equals the claimed principal
	Verify(ctx context.Context, claimed domain.Principal) error
}

type contextOracle struct{}

// NewOracle creates an Oracle backed by the proven principal stored in the
// request context by the authentication middleware
func NewOracle() Oracle {
	return &contextOracle{}
}

// Verify checks the claimed principal against the proven context principal
func (o *contextOracle) Verify(ctx context.Context, claimed domain.Principal) error {
	if !claimed.Valid() {
		return fmt.Errorf("%w: malformed principal %q", domain.ErrUnauthorized, claimed.String())
	}

	proven, ok := PrincipalFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no proven principal", domain.ErrUnauthorized)
	}
	if proven != claimed {
		return fmt.Errorf("%w: caller is not %q", domain.ErrUnauthorized, claimed.String())
	}
	return nil
}
