// Package ownership computes the root-owning user of any entity in the
// hierarchy by walking parent references.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

// Source supplies one ownership link per call. It is implemented by the
// transactional store view, so resolution always reads the same snapshot as
// the write that follows it.
type Source interface {
	// ParentRef returns the parent type and ID recorded on the entity row.
	// The root type reports itself. A missing row is errs.ErrNotFound.
	ParentRef(ctx context.Context, t model.EntityType, id uuid.UUID) (model.EntityType, uuid.UUID, error)
}

// Resolver walks the declared parent chain up to the owning user. The walk is
// depth-agnostic: it is driven entirely by the model's parent table.
type Resolver struct {
	log *zap.Logger
}

// NewResolver constructs a Resolver. A nil logger defaults to a no-op.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Owner returns the ID of the user owning the given entity.
//
// A missing entity is errs.ErrNotFound. A missing row further up the chain is
// a dangling parent reference: that is errs.ErrIntegrity, logged and reported
// distinctly, never treated as "no owner".
func (r *Resolver) Owner(ctx context.Context, src Source, t model.EntityType, id uuid.UUID) (uuid.UUID, error) {
	if !model.Known(t) {
		return uuid.Nil, fmt.Errorf("%w: unknown entity type %q", errs.ErrValidation, t)
	}

	curT, curID := t, id
	for hop := 0; hop <= model.MaxDepth(); hop++ {
		pT, pID, err := src.ParentRef(ctx, curT, curID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				if hop == 0 {
					return uuid.Nil, errs.ErrNotFound
				}
				r.log.Error("broken ownership chain",
					zap.String("entity_type", string(t)),
					zap.String("entity_id", id.String()),
					zap.String("missing_type", string(curT)),
					zap.String("missing_id", curID.String()),
				)
				return uuid.Nil, fmt.Errorf("%w: %s %s references missing %s %s",
					errs.ErrIntegrity, t, id, curT, curID)
			}
			return uuid.Nil, err
		}
		if curT == model.TypeUser {
			return curID, nil
		}
		curT, curID = pT, pID
	}

	r.log.Error("ownership chain exceeds declared depth",
		zap.String("entity_type", string(t)),
		zap.String("entity_id", id.String()),
	)
	return uuid.Nil, fmt.Errorf("%w: ownership chain for %s %s exceeds declared depth", errs.ErrIntegrity, t, id)
}
