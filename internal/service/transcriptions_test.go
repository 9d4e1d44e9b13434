package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/verbatim-app/verbatim/internal/access"
	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/model"
)

func TestTranscriptionService_Create_OK(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	projectID := uuid.Must(uuid.NewV4())
	principal := uuid.Must(uuid.NewV4())
	var stored *model.Transcription
	tx := &fakeTx{createTrans: func(_ context.Context, tr *model.Transcription) error {
		stored = tr
		return nil
	}}
	enf := &fakeEnforcer{}
	svc := NewTranscriptionService(&fakeStore{tx: tx}, enf, fixedIDs{id})

	tr, err := svc.Create(context.Background(), principal, TranscriptionInput{
		ProjectID: projectID,
		FileName:  "meeting.wav",
		FileURL:   "https://files.example/meeting.wav",
		FileSize:  2048,
	})
	if err != nil {
		t.Fatal(err)
	}
	if tr.ID != id || tr.ProjectID != projectID || tr.FileName != "meeting.wav" {
		t.Fatalf("unexpected transcription %+v", tr)
	}
	if stored != tr {
		t.Fatal("transcription not stored")
	}
	if enf.gotOp != access.OpCreate || enf.gotTarget.Type != model.TypeTranscription || enf.gotTarget.Parent != projectID {
		t.Fatalf("enforcer saw %s %+v", enf.gotOp, enf.gotTarget)
	}
}

func TestTranscriptionService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewTranscriptionService(&fakeStore{tx: &fakeTx{}}, &fakeEnforcer{}, fixedIDs{uuid.Must(uuid.NewV4())})

	cases := []struct {
		name string
		in   TranscriptionInput
	}{
		{"no file name", TranscriptionInput{ProjectID: uuid.Must(uuid.NewV4())}},
		{"no project", TranscriptionInput{FileName: "a.wav"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.Must(uuid.NewV4()), tc.in)
			if !errors.Is(err, errs.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestTranscriptionService_Create_ForeignProjectDenied(t *testing.T) {
	t.Parallel()

	enf := &fakeEnforcer{err: errs.ErrParentNotFound}
	tx := &fakeTx{createTrans: func(context.Context, *model.Transcription) error {
		t.Fatal("denied create must not reach the store")
		return nil
	}}
	svc := NewTranscriptionService(&fakeStore{tx: tx}, enf, fixedIDs{uuid.Must(uuid.NewV4())})

	_, err := svc.Create(context.Background(), uuid.Must(uuid.NewV4()), TranscriptionInput{
		ProjectID: uuid.Must(uuid.NewV4()),
		FileName:  "a.wav",
	})
	if !errors.Is(err, errs.ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestTranscriptionService_ListByProject_AuthorizesAgainstProject(t *testing.T) {
	t.Parallel()

	projectID := uuid.Must(uuid.NewV4())
	tx := &fakeTx{listTrans: func(_ context.Context, got uuid.UUID) ([]model.Transcription, error) {
		if got != projectID {
			t.Fatalf("listed for %s, want %s", got, projectID)
		}
		return []model.Transcription{{ProjectID: projectID}}, nil
	}}
	enf := &fakeEnforcer{}
	svc := NewTranscriptionService(&fakeStore{tx: tx}, enf, fixedIDs{uuid.Must(uuid.NewV4())})

	out, err := svc.ListByProject(context.Background(), uuid.Must(uuid.NewV4()), projectID)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d transcriptions", len(out))
	}
	if enf.gotOp != access.OpRead || enf.gotTarget.Type != model.TypeProject || enf.gotTarget.ID != projectID {
		t.Fatalf("enforcer saw %s %+v", enf.gotOp, enf.gotTarget)
	}
}

func TestTranscriptionService_SetResult_OK(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	res := model.TranscriptionResult{Status: "completed", TranscriptText: "hello", Duration: 12.5}
	want := &model.Transcription{ID: id, Status: "completed"}
	tx := &fakeTx{setResult: func(_ context.Context, gotID uuid.UUID, got model.TranscriptionResult) (*model.Transcription, error) {
		if gotID != id || got != res {
			t.Fatalf("stored %s %+v", gotID, got)
		}
		return want, nil
	}}
	enf := &fakeEnforcer{}
	svc := NewTranscriptionService(&fakeStore{tx: tx}, enf, fixedIDs{uuid.Must(uuid.NewV4())})

	tr, err := svc.SetResult(context.Background(), uuid.Must(uuid.NewV4()), id, res)
	if err != nil {
		t.Fatal(err)
	}
	if tr != want {
		t.Fatal("wrong transcription returned")
	}
	if enf.gotOp != access.OpUpdate || enf.gotTarget.Type != model.TypeTranscription || enf.gotTarget.ID != id {
		t.Fatalf("enforcer saw %s %+v", enf.gotOp, enf.gotTarget)
	}
}

func TestTranscriptionService_SetResult_EmptyStatusIsValidation(t *testing.T) {
	t.Parallel()

	enf := &fakeEnforcer{}
	svc := NewTranscriptionService(&fakeStore{tx: &fakeTx{}}, enf, fixedIDs{uuid.Must(uuid.NewV4())})

	_, err := svc.SetResult(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), model.TranscriptionResult{})
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if enf.calls != 0 {
		t.Fatal("validation must reject before any store access")
	}
}

func TestTranscriptionService_Delete_Cascades(t *testing.T) {
	t.Parallel()

	id := uuid.Must(uuid.NewV4())
	var gotType model.EntityType
	tx := &fakeTx{delCascade: func(_ context.Context, et model.EntityType, gotID uuid.UUID) error {
		gotType = et
		if gotID != id {
			t.Fatalf("deleted %s, want %s", gotID, id)
		}
		return nil
	}}
	svc := NewTranscriptionService(&fakeStore{tx: tx}, &fakeEnforcer{}, fixedIDs{uuid.Must(uuid.NewV4())})

	if err := svc.Delete(context.Background(), uuid.Must(uuid.NewV4()), id); err != nil {
		t.Fatal(err)
	}
	if gotType != model.TypeTranscription {
		t.Fatalf("cascade called with %s", gotType)
	}
}
