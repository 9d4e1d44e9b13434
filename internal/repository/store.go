// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/verbatim-app/verbatim/internal/model"
)

// Store opens transactional views of the entity store. Every operation —
// authorization check plus mutation — runs against exactly one Tx so both see
// the same data version.
type Store interface {
	// WithTx runs fn inside a single transaction. A nil error from fn commits;
	// any error rolls the whole transaction back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the per-transaction view of the entity store. Write methods on targeted
// rows take row-level locks so concurrent writers to the same entity queue.
type Tx interface {
	// ParentRef follows one link of the ownership chain: it returns the parent
	// type and parent ID recorded on the entity row, or ok=false for the root
	// type (user, which is its own owner). A missing row is errs.ErrNotFound.
	ParentRef(ctx context.Context, t model.EntityType, id uuid.UUID) (model.EntityType, uuid.UUID, error)

	// users
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)

	// projects
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjectsByOwner(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error)

	// transcriptions
	CreateTranscription(ctx context.Context, tr *model.Transcription) error
	GetTranscription(ctx context.Context, id uuid.UUID) (*model.Transcription, error)
	ListTranscriptionsByProject(ctx context.Context, projectID uuid.UUID) ([]model.Transcription, error)
	SetTranscriptionResult(ctx context.Context, id uuid.UUID, res model.TranscriptionResult) (*model.Transcription, error)

	// derived artifacts
	CreateTranslation(ctx context.Context, tr *model.Translation) error
	GetTranslation(ctx context.Context, id uuid.UUID) (*model.Translation, error)
	ListTranslationsByTranscription(ctx context.Context, transcriptionID uuid.UUID) ([]model.Translation, error)
	CreateVoiceover(ctx context.Context, v *model.Voiceover) error
	GetVoiceover(ctx context.Context, id uuid.UUID) (*model.Voiceover, error)
	ListVoiceoversByTranscription(ctx context.Context, transcriptionID uuid.UUID) ([]model.Voiceover, error)

	// DeleteCascade removes the entity and its entire descendant subtree,
	// children before parents, within this transaction.
	DeleteCascade(ctx context.Context, t model.EntityType, id uuid.UUID) error
}
