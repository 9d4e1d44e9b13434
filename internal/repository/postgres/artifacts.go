package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

// CreateTranslation inserts an immutable translation row.
func (t *txView) CreateTranslation(ctx context.Context, tr *model.Translation) error {
	now := t.clock()
	const q = `
INSERT INTO translations (id, transcription_id, target_language, translated_text, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := t.q.Exec(ctx, q, tr.ID, tr.TranscriptionID, tr.TargetLanguage, tr.TranslatedText, now)
	if isForeignKeyViolation(err) {
		return errs.ErrParentNotFound
	}
	if err != nil {
		return err
	}
	tr.CreatedAt = now
	return nil
}

// GetTranslation selects a translation by ID.
func (t *txView) GetTranslation(ctx context.Context, id uuid.UUID) (*model.Translation, error) {
	const q = `
SELECT id, transcription_id, target_language, translated_text, created_at
FROM translations WHERE id=$1`
	var tr model.Translation
	err := t.q.QueryRow(ctx, q, id).Scan(&tr.ID, &tr.TranscriptionID, &tr.TargetLanguage, &tr.TranslatedText, &tr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &tr, nil
}

// ListTranslationsByTranscription returns a transcription's translations, newest first.
func (t *txView) ListTranslationsByTranscription(ctx context.Context, transcriptionID uuid.UUID) ([]model.Translation, error) {
	const q = `
SELECT id, transcription_id, target_language, translated_text, created_at
FROM translations WHERE transcription_id=$1
ORDER BY created_at DESC`
	rows, err := t.q.Query(ctx, q, transcriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Translation
	for rows.Next() {
		var tr model.Translation
		if err := rows.Scan(&tr.ID, &tr.TranscriptionID, &tr.TargetLanguage, &tr.TranslatedText, &tr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// CreateVoiceover inserts an immutable voice-over row.
func (t *txView) CreateVoiceover(ctx context.Context, v *model.Voiceover) error {
	now := t.clock()
	const q = `
INSERT INTO voiceovers (id, transcription_id, voice_name, audio_url, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := t.q.Exec(ctx, q, v.ID, v.TranscriptionID, v.VoiceName, v.AudioURL, now)
	if isForeignKeyViolation(err) {
		return errs.ErrParentNotFound
	}
	if err != nil {
		return err
	}
	v.CreatedAt = now
	return nil
}

// GetVoiceover selects a voice-over by ID.
func (t *txView) GetVoiceover(ctx context.Context, id uuid.UUID) (*model.Voiceover, error) {
	const q = `
SELECT id, transcription_id, voice_name, audio_url, created_at
FROM voiceovers WHERE id=$1`
	var v model.Voiceover
	err := t.q.QueryRow(ctx, q, id).Scan(&v.ID, &v.TranscriptionID, &v.VoiceName, &v.AudioURL, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListVoiceoversByTranscription returns a transcription's voice-overs, newest first.
func (t *txView) ListVoiceoversByTranscription(ctx context.Context, transcriptionID uuid.UUID) ([]model.Voiceover, error) {
	const q = `
SELECT id, transcription_id, voice_name, audio_url, created_at
FROM voiceovers WHERE transcription_id=$1
ORDER BY created_at DESC`
	rows, err := t.q.Query(ctx, q, transcriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Voiceover
	for rows.Next() {
		var v model.Voiceover
		if err := rows.Scan(&v.ID, &v.TranscriptionID, &v.VoiceName, &v.AudioURL, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
