// Package service contains the application services that make up the
// operation surface of the tenancy core. Every operation runs its access
// check and its store mutation inside one transaction.
package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/verbatim-app/verbatim/internal/access"
	"github.com/verbatim-app/verbatim/internal/ownership"
)

// Enforcer is the decision choke point the services consult before every
// store access. Implemented by access.Enforcer.
type Enforcer interface {
	Require(ctx context.Context, src ownership.Source, principal uuid.UUID, op access.Operation, tgt access.Target) error
}
