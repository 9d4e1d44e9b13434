package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/verbatim-app/verbatim/internal/access"
	"github.com/verbatim-app/verbatim/internal/model"
	"github.com/verbatim-app/verbatim/internal/repository"
)

// UserService exposes operations on user accounts. The policy is self-only:
// a principal can read, update, and delete exactly one user — itself.
type UserService struct {
	store    repository.Store
	enforcer Enforcer
}

// NewUserService constructs UserService with required dependencies.
func NewUserService(store repository.Store, enforcer Enforcer) *UserService {
	return &UserService{store: store, enforcer: enforcer}
}

// Get returns the user, or errs.ErrNotFound for anyone else's account.
func (s *UserService) Get(ctx context.Context, principal, id uuid.UUID) (*model.User, error) {
	var u *model.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeUser, ID: id}); err != nil {
			return err
		}
		var err error
		u, err = tx.GetUser(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies a partial update to the user's own account. An empty patch
// returns the current row without bumping updated_at.
func (s *UserService) Update(ctx context.Context, principal, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	var u *model.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpUpdate, access.Target{Type: model.TypeUser, ID: id}); err != nil {
			return err
		}
		var err error
		if patch.IsEmpty() {
			u, err = tx.GetUser(ctx, id)
			return err
		}
		u, err = tx.UpdateUser(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user and, atomically, every project, transcription, and
// derived artifact underneath it.
func (s *UserService) Delete(ctx context.Context, principal, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpDelete, access.Target{Type: model.TypeUser, ID: id}); err != nil {
			return err
		}
		return tx.DeleteCascade(ctx, model.TypeUser, id)
	})
}
