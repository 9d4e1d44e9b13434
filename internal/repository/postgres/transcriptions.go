package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

// CreateTranscription inserts a new transcription row. A dangling project
// reference maps to ErrParentNotFound; no row is persisted in that case.
func (t *txView) CreateTranscription(ctx context.Context, tr *model.Transcription) error {
	if tr.Language == "" {
		tr.Language = model.DefaultLanguage
	}
	if tr.Status == "" {
		tr.Status = model.DefaultTranscriptionStatus
	}
	now := t.clock()
	const q = `
INSERT INTO transcriptions (id, project_id, file_name, file_url, file_size, language,
                            transcript_text, srt_content, duration, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := t.q.Exec(ctx, q,
		tr.ID, tr.ProjectID, tr.FileName, tr.FileURL, tr.FileSize, tr.Language,
		tr.TranscriptText, tr.SRTContent, tr.Duration, tr.Status, now)
	if isForeignKeyViolation(err) {
		return errs.ErrParentNotFound
	}
	if err != nil {
		return err
	}
	tr.CreatedAt = now
	return nil
}

// GetTranscription selects a transcription by ID.
func (t *txView) GetTranscription(ctx context.Context, id uuid.UUID) (*model.Transcription, error) {
	const q = transcriptionCols + ` WHERE id=$1`
	return scanTranscription(t.q.QueryRow(ctx, q, id))
}

// ListTranscriptionsByProject returns a project's transcriptions, newest first.
func (t *txView) ListTranscriptionsByProject(ctx context.Context, projectID uuid.UUID) ([]model.Transcription, error) {
	const q = transcriptionCols + ` WHERE project_id=$1 ORDER BY created_at DESC`
	rows, err := t.q.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transcription
	for rows.Next() {
		var tr model.Transcription
		if err := rows.Scan(&tr.ID, &tr.ProjectID, &tr.FileName, &tr.FileURL, &tr.FileSize,
			&tr.Language, &tr.TranscriptText, &tr.SRTContent, &tr.Duration, &tr.Status, &tr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// SetTranscriptionResult stores the pipeline's append-once result payload.
// Transcriptions carry no updated_at, so nothing is stamped here.
func (t *txView) SetTranscriptionResult(ctx context.Context, id uuid.UUID, res model.TranscriptionResult) (*model.Transcription, error) {
	const q = `
UPDATE transcriptions
SET transcript_text = $2, srt_content = $3, duration = $4, status = $5
WHERE id = $1
RETURNING id, project_id, file_name, file_url, file_size, language,
          transcript_text, srt_content, duration, status, created_at`
	return scanTranscription(t.q.QueryRow(ctx, q, id, res.TranscriptText, res.SRTContent, res.Duration, res.Status))
}

const transcriptionCols = `
SELECT id, project_id, file_name, file_url, file_size, language,
       transcript_text, srt_content, duration, status, created_at
FROM transcriptions`

func scanTranscription(row pgx.Row) (*model.Transcription, error) {
	var tr model.Transcription
	err := row.Scan(&tr.ID, &tr.ProjectID, &tr.FileName, &tr.FileURL, &tr.FileSize,
		&tr.Language, &tr.TranscriptText, &tr.SRTContent, &tr.Duration, &tr.Status, &tr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &tr, nil
}
