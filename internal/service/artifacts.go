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

// ArtifactService exposes operations on the immutable leaf artifacts derived
// from a transcription: translations and voice-overs. Neither supports update;
// direct delete is gated on the same resolved owner as every other delete.
type ArtifactService struct {
	store    repository.Store
	enforcer Enforcer
	ids      idgen.Generator
}

// NewArtifactService constructs ArtifactService with required dependencies.
func NewArtifactService(store repository.Store, enforcer Enforcer, ids idgen.Generator) *ArtifactService {
	return &ArtifactService{store: store, enforcer: enforcer, ids: ids}
}

// CreateTranslation adds a translation under a transcription the principal owns.
func (s *ArtifactService) CreateTranslation(ctx context.Context, principal, transcriptionID uuid.UUID, targetLanguage, translatedText string) (*model.Translation, error) {
	if targetLanguage == "" {
		return nil, fmt.Errorf("%w: target language", errs.ErrValidation)
	}
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	tr := &model.Translation{
		ID:              id,
		TranscriptionID: transcriptionID,
		TargetLanguage:  targetLanguage,
		TranslatedText:  translatedText,
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpCreate, access.Target{Type: model.TypeTranslation, Parent: transcriptionID}); err != nil {
			return err
		}
		return tx.CreateTranslation(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// GetTranslation returns one translation, or errs.ErrNotFound for another tenant's.
func (s *ArtifactService) GetTranslation(ctx context.Context, principal, id uuid.UUID) (*model.Translation, error) {
	var tr *model.Translation
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeTranslation, ID: id}); err != nil {
			return err
		}
		var err error
		tr, err = tx.GetTranslation(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// ListTranslations returns a transcription's translations, newest first.
func (s *ArtifactService) ListTranslations(ctx context.Context, principal, transcriptionID uuid.UUID) ([]model.Translation, error) {
	var out []model.Translation
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeTranscription, ID: transcriptionID}); err != nil {
			return err
		}
		var err error
		out, err = tx.ListTranslationsByTranscription(ctx, transcriptionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTranslation removes one translation.
func (s *ArtifactService) DeleteTranslation(ctx context.Context, principal, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpDelete, access.Target{Type: model.TypeTranslation, ID: id}); err != nil {
			return err
		}
		return tx.DeleteCascade(ctx, model.TypeTranslation, id)
	})
}

// CreateVoiceover adds a voice-over under a transcription the principal owns.
func (s *ArtifactService) CreateVoiceover(ctx context.Context, principal, transcriptionID uuid.UUID, voiceName, audioURL string) (*model.Voiceover, error) {
	if voiceName == "" {
		return nil, fmt.Errorf("%w: voice name", errs.ErrValidation)
	}
	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	v := &model.Voiceover{
		ID:              id,
		TranscriptionID: transcriptionID,
		VoiceName:       voiceName,
		AudioURL:        audioURL,
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpCreate, access.Target{Type: model.TypeVoiceover, Parent: transcriptionID}); err != nil {
			return err
		}
		return tx.CreateVoiceover(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetVoiceover returns one voice-over, or errs.ErrNotFound for another tenant's.
func (s *ArtifactService) GetVoiceover(ctx context.Context, principal, id uuid.UUID) (*model.Voiceover, error) {
	var v *model.Voiceover
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeVoiceover, ID: id}); err != nil {
			return err
		}
		var err error
		v, err = tx.GetVoiceover(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVoiceovers returns a transcription's voice-overs, newest first.
func (s *ArtifactService) ListVoiceovers(ctx context.Context, principal, transcriptionID uuid.UUID) ([]model.Voiceover, error) {
	var out []model.Voiceover
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpRead, access.Target{Type: model.TypeTranscription, ID: transcriptionID}); err != nil {
			return err
		}
		var err error
		out, err = tx.ListVoiceoversByTranscription(ctx, transcriptionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVoiceover removes one voice-over.
func (s *ArtifactService) DeleteVoiceover(ctx context.Context, principal, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := s.enforcer.Require(ctx, tx, principal, access.OpDelete, access.Target{Type: model.TypeVoiceover, ID: id}); err != nil {
			return err
		}
		return tx.DeleteCascade(ctx, model.TypeVoiceover, id)
	})
}
