// Package principal adapts the external auth collaborator's identity boundary.
//
// Credential issuance lives outside this module; what arrives here is either an
// already-verified principal ID carried in the context, or a bearer token the
// collaborator signed. Both resolve to an opaque uuid the enforcer compares.
// The embedding transport layer calls this package before invoking a service;
// nothing inside the core itself depends on it.
package principal

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
)

type ctxKey string

const principalKey ctxKey = "verbatim.principal"

// WithPrincipal stores an authenticated principal ID in the context.
func WithPrincipal(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, principalKey, id)
}

// FromContext fetches the principal ID from the context.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Verifier resolves collaborator-issued HS256 bearer tokens to principal IDs.
type Verifier struct {
	signKey []byte
	leeway  time.Duration
}

// NewVerifier constructs a Verifier for the shared signing key.
func NewVerifier(signKey []byte) *Verifier {
	return &Verifier{signKey: signKey, leeway: 30 * time.Second}
}

// Principal verifies the token and returns its subject as the principal ID.
// Any failure is reported as errs.ErrUnauthenticated without detail.
func (v *Verifier) Principal(token string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, errs.ErrUnauthenticated
	}

	val := jwt.NewValidator(jwt.WithLeeway(v.leeway))
	if err := val.Validate(&claims); err != nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	return id, nil
}
