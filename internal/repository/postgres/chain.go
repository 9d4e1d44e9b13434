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

// tableOf maps entity types to their tables. Together with parentColumnOf it is
// the SQL side of the declarative hierarchy in the model package: a new level
// needs a row here and in model.ParentType, nothing else.
var tableOf = map[model.EntityType]string{
	model.TypeUser:          "users",
	model.TypeProject:       "projects",
	model.TypeTranscription: "transcriptions",
	model.TypeTranslation:   "translations",
	model.TypeVoiceover:     "voiceovers",
}

// parentColumnOf maps non-root entity types to their parent-reference column.
var parentColumnOf = map[model.EntityType]string{
	model.TypeProject:       "user_id",
	model.TypeTranscription: "project_id",
	model.TypeTranslation:   "transcription_id",
	model.TypeVoiceover:     "transcription_id",
}

// ParentRef follows one ownership link. For the root type it verifies the user
// row exists and reports the user as its own owner.
func (t *txView) ParentRef(ctx context.Context, et model.EntityType, id uuid.UUID) (model.EntityType, uuid.UUID, error) {
	table, ok := tableOf[et]
	if !ok {
		return "", uuid.Nil, fmt.Errorf("%w: unknown entity type %q", errs.ErrValidation, et)
	}

	if et == model.TypeUser {
		q := fmt.Sprintf(`SELECT id FROM %s WHERE id=$1`, table)
		var self uuid.UUID
		if err := t.q.QueryRow(ctx, q, id).Scan(&self); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", uuid.Nil, errs.ErrNotFound
			}
			return "", uuid.Nil, err
		}
		return model.TypeUser, self, nil
	}

	parent, _ := model.ParentType(et)
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, parentColumnOf[et], table)
	var pid uuid.UUID
	if err := t.q.QueryRow(ctx, q, id).Scan(&pid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", uuid.Nil, errs.ErrNotFound
		}
		return "", uuid.Nil, err
	}
	return parent, pid, nil
}
