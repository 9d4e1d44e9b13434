package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

// CreateUser inserts a new user row. A duplicate email maps to ErrAlreadyExists;
// the unique index serializes concurrent inserts.
func (t *txView) CreateUser(ctx context.Context, u *model.User) error {
	if u.Plan == "" {
		u.Plan = model.DefaultPlan
	}
	now := t.clock()
	const q = `
INSERT INTO users (id, email, pwd_hash, salt_auth, name, plan, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := t.q.Exec(ctx, q, u.ID, u.Email, u.PwdHash, u.SaltAuth, u.Name, u.Plan, now)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// GetUser selects a user by ID.
func (t *txView) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, salt_auth, name, plan, created_at, updated_at
FROM users WHERE id=$1`
	return t.scanUser(t.q.QueryRow(ctx, q, id))
}

// GetUserByEmail selects a user by email.
func (t *txView) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, salt_auth, name, plan, created_at, updated_at
FROM users WHERE email=$1`
	return t.scanUser(t.q.QueryRow(ctx, q, email))
}

// UpdateUser applies a partial update and stamps updated_at from the store
// clock, overriding anything the caller may have supplied. The UPDATE itself
// takes the row lock, so concurrent writers to the same user queue.
func (t *txView) UpdateUser(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	const q = `
UPDATE users
SET name = COALESCE($2, name), plan = COALESCE($3, plan), updated_at = $4
WHERE id = $1
RETURNING id, email, pwd_hash, salt_auth, name, plan, created_at, updated_at`
	u, err := t.scanUser(t.q.QueryRow(ctx, q, id, patch.Name, patch.Plan, t.clock()))
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (t *txView) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PwdHash, &u.SaltAuth, &u.Name, &u.Plan, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
