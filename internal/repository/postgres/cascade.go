package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

// DeleteCascade removes an entity and its entire descendant subtree inside the
// current transaction. The walk is top-down over the declarative child table,
// deleting leaves first, so no intermediate state with orphaned children can
// commit. The target row is locked up front so concurrent writers queue behind
// the delete instead of racing it.
func (t *txView) DeleteCascade(ctx context.Context, et model.EntityType, id uuid.UUID) error {
	table, ok := tableOf[et]
	if !ok {
		return fmt.Errorf("%w: unknown entity type %q", errs.ErrValidation, et)
	}

	lock := fmt.Sprintf(`SELECT id FROM %s WHERE id=$1 FOR UPDATE`, table)
	var locked uuid.UUID
	if err := t.q.QueryRow(ctx, lock, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	return t.deleteSubtree(ctx, et, []string{id.String()})
}

// deleteSubtree removes all descendants of the given rows, then the rows
// themselves. IDs travel as strings and are cast back to uuid[] in SQL.
func (t *txView) deleteSubtree(ctx context.Context, et model.EntityType, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	for _, child := range model.ChildTypes(et) {
		sel := fmt.Sprintf(`SELECT id FROM %s WHERE %s = ANY($1::uuid[])`, tableOf[child], parentColumnOf[child])
		childIDs, err := t.collectIDs(ctx, sel, ids)
		if err != nil {
			return err
		}
		if err := t.deleteSubtree(ctx, child, childIDs); err != nil {
			return err
		}
	}

	del := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1::uuid[])`, tableOf[et])
	_, err := t.q.Exec(ctx, del, ids)
	return err
}

func (t *txView) collectIDs(ctx context.Context, sql string, args []string) ([]string, error) {
	rows, err := t.q.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id.String())
	}
	return out, rows.Err()
}
