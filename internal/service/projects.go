package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/verbatim-app/verbatim/internal/access"
	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/idgen"
	"github.com/verbatim-app/verbatim/internal/model"
	"github.com/verbatim-app/verbatim/internal/repository"
)

// ProjectService exposes operations on projects.
type ProjectService struct {
	store    repository.Store
	enforcer Enforcer
	ids      idgen.Generator
}

// NewProjectService constructs ProjectService with required dependencies.
func NewProjectService(store repository.Store, enforcer Enforcer, ids idgen.Generator) *ProjectService {
	return &ProjectService{store: store, enforcer: enforcer, ids: ids}
}

// Create makes a new project under ownerID. The principal must be that owner.
func (s *ProjectService) Create(ctx context.Context, principal, ownerID uuid.UUID, name, description string) (*model.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name", errs.ErrValidation)
	}
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	p := &model.Project{
		ID:          id,
		UserID:      ownerID,
		Name:        name,
		Description: description,
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpCreate, access.Target{Type: model.TypeProject, Parent: ownerID}); err != nil {
			return err
		}
		return tx.CreateProject(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one project, or errs.ErrNotFound for another tenant's.
func (s *ProjectService) Get(ctx context.Context, principal, id uuid.UUID) (*model.Project, error) {
	var p *model.Project
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeProject, ID: id}); err != nil {
			return err
		}
		var err error
		p, err = tx.GetProject(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns ownerID's projects, newest first. Listing is a read on the
// owning user, so only that user can see its own list.
func (s *ProjectService) List(ctx context.Context, principal, ownerID uuid.UUID) ([]model.Project, error) {
	var out []model.Project
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeUser, ID: ownerID}); err != nil {
			return err
		}
		var err error
		out, err = tx.ListProjectsByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update. An empty patch returns the current row
// without bumping updated_at.
func (s *ProjectService) Update(ctx context.Context, principal, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error) {
	var p *model.Project
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpUpdate, access.Target{Type: model.TypeProject, ID: id}); err != nil {
			return err
		}
		var err error
		if patch.IsEmpty() {
			p, err = tx.GetProject(ctx, id)
			return err
		}
		p, err = tx.UpdateProject(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project and, atomically, all its transcriptions and
// their derived artifacts.
func (s *ProjectService) Delete(ctx context.Context, principal, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpDelete, access.Target{Type: model.TypeProject, ID: id}); err != nil {
			return err
		}
		return tx.DeleteCascade(ctx, model.TypeProject, id)
	})
}
