package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

// CreateProject inserts a new project row. A dangling owner reference maps to
// ErrParentNotFound.
func (t *txView) CreateProject(ctx context.Context, p *model.Project) error {
	if p.Status == "" {
		p.Status = model.DefaultProjectStatus
	}
	now := t.clock()
	const q = `
INSERT INTO projects (id, user_id, name, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := t.q.Exec(ctx, q, p.ID, p.UserID, p.Name, p.Description, p.Status, now)
	if isForeignKeyViolation(err) {
		return errs.ErrParentNotFound
	}
	if err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// GetProject selects a project by ID.
func (t *txView) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	const q = `
SELECT id, user_id, name, description, status, created_at, updated_at
FROM projects WHERE id=$1`
	return scanProject(t.q.QueryRow(ctx, q, id))
}

// ListProjectsByOwner returns the user's projects, newest first.
func (t *txView) ListProjectsByOwner(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	const q = `
SELECT id, user_id, name, description, status, created_at, updated_at
FROM projects WHERE user_id=$1
ORDER BY created_at DESC`
	rows, err := t.q.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProject applies a partial update and stamps updated_at from the store
// clock. The parent reference is never part of the patch.
func (t *txView) UpdateProject(ctx context.Context, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error) {
	const q = `
UPDATE projects
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    status = COALESCE($4, status),
    updated_at = $5
WHERE id = $1
RETURNING id, user_id, name, description, status, created_at, updated_at`
	return scanProject(t.q.QueryRow(ctx, q, id, patch.Name, patch.Description, patch.Status, t.clock()))
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
