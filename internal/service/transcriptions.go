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

// TranscriptionInput carries the fields a caller supplies when registering an
// uploaded file. Result fields are absent: the pipeline reports them later via
// SetResult.
type TranscriptionInput struct {
	ProjectID uuid.UUID
	FileName  string
	FileURL   string
	FileSize  int64
	Language  string // defaults to "en-US" when empty
}

// TranscriptionService exposes operations on transcriptions.
type TranscriptionService struct {
	store    repository.Store
	enforcer Enforcer
	ids      idgen.Generator
}

// NewTranscriptionService constructs TranscriptionService with required dependencies.
func NewTranscriptionService(store repository.Store, enforcer Enforcer, ids idgen.Generator) *TranscriptionService {
	return &TranscriptionService{store: store, enforcer: enforcer, ids: ids}
}

// Create registers an uploaded file under a project the principal owns. A
// missing or foreign project is errs.ErrParentNotFound and nothing persists.
func (s *TranscriptionService) Create(ctx context.Context, principal uuid.UUID, in TranscriptionInput) (*model.Transcription, error) {
	if in.FileName == "" {
		return nil, fmt.Errorf("%w: file name", errs.ErrValidation)
	}
	if in.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: project id", errs.ErrValidation)
	}
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	tr := &model.Transcription{
		ID:        id,
		ProjectID: in.ProjectID,
		FileName:  in.FileName,
		FileURL:   in.FileURL,
		FileSize:  in.FileSize,
		Language:  in.Language,
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpCreate, access.Target{Type: model.TypeTranscription, Parent: in.ProjectID}); err != nil {
			return err
		}
		return tx.CreateTranscription(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Get returns one transcription, or errs.ErrNotFound for another tenant's.
func (s *TranscriptionService) Get(ctx context.Context, principal, id uuid.UUID) (*model.Transcription, error) {
	var tr *model.Transcription
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeTranscription, ID: id}); err != nil {
			return err
		}
		var err error
		tr, err = tx.GetTranscription(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// ListByProject returns a project's transcriptions, newest first.
func (s *TranscriptionService) ListByProject(ctx context.Context, principal, projectID uuid.UUID) ([]model.Transcription, error) {
	var out []model.Transcription
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeProject, ID: projectID}); err != nil {
			return err
		}
		var err error
		out, err = tx.ListTranscriptionsByProject(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetResult stores the processing pipeline's append-once result payload. It is
// the only mutation transcriptions support after creation, and it does not
// maintain a modification timestamp — transcriptions have none.
func (s *TranscriptionService) SetResult(ctx context.Context, principal, id uuid.UUID, res model.TranscriptionResult) (*model.Transcription, error) {
	if res.Status == "" {
		return nil, fmt.Errorf("%w: status", errs.ErrValidation)
	}
	var tr *model.Transcription
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpUpdate, access.Target{Type: model.TypeTranscription, ID: id}); err != nil {
			return err
		}
		var err error
		tr, err = tx.SetTranscriptionResult(ctx, id, res)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Delete removes the transcription and, atomically, its translations and
// voice-overs.
func (s *TranscriptionService) Delete(ctx context.Context, principal, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpDelete, access.Target{Type: model.TypeTranscription, ID: id}); err != nil {
			return err
		}
		return tx.DeleteCascade(ctx, model.TypeTranscription, id)
	})
}
