// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Defaults applied by the store when the caller leaves a field empty.
const (
	DefaultPlan                = "free"
	DefaultProjectStatus       = "active"
	DefaultTranscriptionStatus = "pending"
	DefaultLanguage            = "en-US"
)

// User is a root account. It owns everything below it in the hierarchy.
type User struct {
	ID        uuid.UUID // PK, server-generated
	Email     string    // unique across all users
	PwdHash   []byte    // Argon2id(password, salt)
	SaltAuth  []byte    // per-user auth salt
	Name      string
	Plan      string // plan tier, "free" unless set
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Project groups transcriptions under a single user.
type Project struct {
	ID          uuid.UUID
	UserID      uuid.UUID // FK -> users.id
	Name        string
	Description string
	Status      string // open enum, "active" unless set
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transcription is an uploaded media file plus its processing result. Result
// fields are populated append-once by the external pipeline; there is no
// updated_at on purpose.
type Transcription struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID // FK -> projects.id
	FileName       string
	FileURL        string
	FileSize       int64
	Language       string // BCP-47 tag, "en-US" unless set
	TranscriptText string
	SRTContent     string
	Duration       float64 // seconds
	Status         string  // "pending" until the pipeline reports
	CreatedAt      time.Time
}

// Translation is an immutable derived artifact of a transcription.
type Translation struct {
	ID              uuid.UUID
	TranscriptionID uuid.UUID // FK -> transcriptions.id
	TargetLanguage  string
	TranslatedText  string
	CreatedAt       time.Time
}

// Voiceover is an immutable synthesized-audio artifact of a transcription.
type Voiceover struct {
	ID              uuid.UUID
	TranscriptionID uuid.UUID // FK -> transcriptions.id
	VoiceName       string
	AudioURL        string
	CreatedAt       time.Time
}

// TranscriptionResult is the pipeline's append-once payload for a transcription.
type TranscriptionResult struct {
	TranscriptText string
	SRTContent     string
	Duration       float64
	Status         string
}

// UserPatch carries a partial user update; nil fields are left untouched.
type UserPatch struct {
	Name *string
	Plan *string
}

// ProjectPatch carries a partial project update; nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool { return p.Name == nil && p.Plan == nil }

// IsEmpty reports whether the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil
}
