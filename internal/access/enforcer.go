// Package access is the single choke point for authorization decisions.
//
// Every entity operation passes through Enforcer.Require before touching the
// store. The policy is default-deny: an (entity type, operation) pair without
// an explicit rule is rejected. Denials surface as errs.ErrNotFound so callers
// cannot tell another tenant's entity apart from a missing one.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
	"github.com/verbatim-app/verbatim/internal/ownership"
)

// Operation is one of the four entity operations the policy table covers.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Target names the entity an operation acts on. For read/update/delete, ID is
// the existing entity. For create, Parent is the supplied parent reference the
// new row will point at (the owner user for projects, the project for
// transcriptions, the transcription for derived artifacts).
type Target struct {
	Type   model.EntityType
	ID     uuid.UUID
	Parent uuid.UUID
}

type rule int

const (
	selfOnly      rule = iota + 1 // principal must be the target user itself
	resolvedOwner                 // principal must be the owner resolved from Target.ID
	parentOwner                   // create: principal must own the referenced parent
)

// policy is the complete allow table. Absence means deny. User creation is
// deliberately missing: identity issuance does not pass through the enforcer.
var policy = map[model.EntityType]map[Operation]rule{
	model.TypeUser: {
		OpRead:   selfOnly,
		OpUpdate: selfOnly,
		OpDelete: selfOnly,
	},
	model.TypeProject: {
		OpCreate: parentOwner,
		OpRead:   resolvedOwner,
		OpUpdate: resolvedOwner,
		OpDelete: resolvedOwner,
	},
	model.TypeTranscription: {
		OpCreate: parentOwner,
		OpRead:   resolvedOwner,
		OpUpdate: resolvedOwner,
		OpDelete: resolvedOwner,
	},
	model.TypeTranslation: {
		OpCreate: parentOwner,
		OpRead:   resolvedOwner,
		OpDelete: resolvedOwner,
	},
	model.TypeVoiceover: {
		OpCreate: parentOwner,
		OpRead:   resolvedOwner,
		OpDelete: resolvedOwner,
	},
}

// OwnerResolver resolves the owning user of an entity against a snapshot.
type OwnerResolver interface {
	Owner(ctx context.Context, src ownership.Source, t model.EntityType, id uuid.UUID) (uuid.UUID, error)
}

// Enforcer evaluates the policy table. It never mutates state.
type Enforcer struct {
	resolver OwnerResolver
	log      *zap.Logger
}

// NewEnforcer constructs an Enforcer. A nil logger defaults to a no-op.
func NewEnforcer(resolver OwnerResolver, log *zap.Logger) *Enforcer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enforcer{resolver: resolver, log: log}
}

// Require returns nil when principal may perform op on tgt, and an error
// otherwise. src must be the same transactional view the following write uses.
//
// Error contract: plain denial and absence both come back as errs.ErrNotFound
// (errs.ErrParentNotFound for creates); a broken ownership chain comes back as
// errs.ErrIntegrity untouched.
func (e *Enforcer) Require(ctx context.Context, src ownership.Source, principal uuid.UUID, op Operation, tgt Target) error {
	if principal == uuid.Nil {
		return errs.ErrUnauthenticated
	}
	if !model.Known(tgt.Type) {
		return fmt.Errorf("%w: unknown entity type %q", errs.ErrValidation, tgt.Type)
	}

	r, ok := policy[tgt.Type][op]
	if !ok {
		e.deny(op, tgt)
		return errs.ErrNotFound
	}

	switch r {
	case selfOnly:
		if principal != tgt.ID {
			e.deny(op, tgt)
			return errs.ErrNotFound
		}
		return nil

	case resolvedOwner:
		owner, err := e.resolver.Owner(ctx, src, tgt.Type, tgt.ID)
		if err != nil {
			return err
		}
		if owner != principal {
			e.deny(op, tgt)
			return errs.ErrNotFound
		}
		return nil

	case parentOwner:
		parent, _ := model.ParentType(tgt.Type)
		owner, err := e.resolver.Owner(ctx, src, parent, tgt.Parent)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.ErrParentNotFound
			}
			return err
		}
		if owner != principal {
			// A foreign parent reads the same as a missing one.
			e.deny(op, tgt)
			return errs.ErrParentNotFound
		}
		return nil
	}

	e.deny(op, tgt)
	return errs.ErrNotFound
}

// deny records the decision without payloads or row data.
func (e *Enforcer) deny(op Operation, tgt Target) {
	e.log.Debug("access denied",
		zap.String("op", string(op)),
		zap.String("entity_type", string(tgt.Type)),
	)
}
