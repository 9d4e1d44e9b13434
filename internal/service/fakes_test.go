package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/verbatim-app/verbatim/internal/access"
	"github.com/verbatim-app/verbatim/internal/model"
	"github.com/verbatim-app/verbatim/internal/ownership"
	"github.com/verbatim-app/verbatim/internal/repository"
)

// fakeTx stubs only the methods a test needs; calling anything else panics via
// the embedded nil interface, which is exactly what we want from a test.
type fakeTx struct {
	repository.Tx

	createUser  func(ctx context.Context, u *model.User) error
	getUser     func(ctx context.Context, id uuid.UUID) (*model.User, error)
	getByEmail  func(ctx context.Context, email string) (*model.User, error)
	updateUser  func(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)
	createProj  func(ctx context.Context, p *model.Project) error
	getProj     func(ctx context.Context, id uuid.UUID) (*model.Project, error)
	listProj    func(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	updateProj  func(ctx context.Context, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error)
	createTrans func(ctx context.Context, tr *model.Transcription) error
	getTrans    func(ctx context.Context, id uuid.UUID) (*model.Transcription, error)
	listTrans   func(ctx context.Context, projectID uuid.UUID) ([]model.Transcription, error)
	setResult   func(ctx context.Context, id uuid.UUID, res model.TranscriptionResult) (*model.Transcription, error)
	createTl    func(ctx context.Context, tr *model.Translation) error
	getTl       func(ctx context.Context, id uuid.UUID) (*model.Translation, error)
	listTl      func(ctx context.Context, transcriptionID uuid.UUID) ([]model.Translation, error)
	createVo    func(ctx context.Context, v *model.Voiceover) error
	getVo       func(ctx context.Context, id uuid.UUID) (*model.Voiceover, error)
	listVo      func(ctx context.Context, transcriptionID uuid.UUID) ([]model.Voiceover, error)
	delCascade  func(ctx context.Context, t model.EntityType, id uuid.UUID) error
}

func (f *fakeTx) CreateUser(ctx context.Context, u *model.User) error { return f.createUser(ctx, u) }
func (f *fakeTx) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return f.getUser(ctx, id)
}
func (f *fakeTx) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.getByEmail(ctx, email)
}
func (f *fakeTx) UpdateUser(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	return f.updateUser(ctx, id, patch)
}
func (f *fakeTx) CreateProject(ctx context.Context, p *model.Project) error {
	return f.createProj(ctx, p)
}
func (f *fakeTx) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return f.getProj(ctx, id)
}
func (f *fakeTx) ListProjectsByOwner(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	return f.listProj(ctx, userID)
}
func (f *fakeTx) UpdateProject(ctx context.Context, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error) {
	return f.updateProj(ctx, id, patch)
}
func (f *fakeTx) CreateTranscription(ctx context.Context, tr *model.Transcription) error {
	return f.createTrans(ctx, tr)
}
func (f *fakeTx) GetTranscription(ctx context.Context, id uuid.UUID) (*model.Transcription, error) {
	return f.getTrans(ctx, id)
}
func (f *fakeTx) ListTranscriptionsByProject(ctx context.Context, projectID uuid.UUID) ([]model.Transcription, error) {
	return f.listTrans(ctx, projectID)
}
func (f *fakeTx) SetTranscriptionResult(ctx context.Context, id uuid.UUID, res model.TranscriptionResult) (*model.Transcription, error) {
	return f.setResult(ctx, id, res)
}
func (f *fakeTx) CreateTranslation(ctx context.Context, tr *model.Translation) error {
	return f.createTl(ctx, tr)
}
func (f *fakeTx) GetTranslation(ctx context.Context, id uuid.UUID) (*model.Translation, error) {
	return f.getTl(ctx, id)
}
func (f *fakeTx) ListTranslationsByTranscription(ctx context.Context, transcriptionID uuid.UUID) ([]model.Translation, error) {
	return f.listTl(ctx, transcriptionID)
}
func (f *fakeTx) CreateVoiceover(ctx context.Context, v *model.Voiceover) error {
	return f.createVo(ctx, v)
}
func (f *fakeTx) GetVoiceover(ctx context.Context, id uuid.UUID) (*model.Voiceover, error) {
	return f.getVo(ctx, id)
}
func (f *fakeTx) ListVoiceoversByTranscription(ctx context.Context, transcriptionID uuid.UUID) ([]model.Voiceover, error) {
	return f.listVo(ctx, transcriptionID)
}
func (f *fakeTx) DeleteCascade(ctx context.Context, t model.EntityType, id uuid.UUID) error {
	return f.delCascade(ctx, t, id)
}

// fakeStore hands every WithTx call the same fakeTx.
type fakeStore struct {
	tx    *fakeTx
	txErr error
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return fn(f.tx)
}

// fakeEnforcer records the last decision request and returns a fixed verdict.
type fakeEnforcer struct {
	err       error
	gotOp     access.Operation
	gotTarget access.Target
	gotPrin   uuid.UUID
	calls     int
}

func (f *fakeEnforcer) Require(_ context.Context, _ ownership.Source, principal uuid.UUID, op access.Operation, tgt access.Target) error {
	f.calls++
	f.gotPrin, f.gotOp, f.gotTarget = principal, op, tgt
	return f.err
}

// fixedIDs returns the same ID every time.
type fixedIDs struct{ id uuid.UUID }

func (f fixedIDs) NewID() (uuid.UUID, error) { return f.id, nil }
