// Package interfaces defines service contracts for Strata
package interfaces

import (
	"context"

	"github.com/cmai/strata/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	Submissions() SubmissionStorage
	Options() OptionStorage
	Endorsements() EndorsementStorage
	Subjectivities() SubjectivityStorage
	InternalStore() InternalStore

	// Lifecycle
	Close() error
}

// SubmissionStorage persists submissions.
type SubmissionStorage interface {
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	SaveSubmission(ctx context.Context, sub *models.Submission) error
	ListSubmissions(ctx context.Context) ([]*models.Submission, error)
	DeleteSubmission(ctx context.Context, id string) error
}

// OptionStorage persists quote options.
type OptionStorage interface {
	GetOption(ctx context.Context, id string) (*models.QuoteOption, error)
	SaveOption(ctx context.Context, option *models.QuoteOption) error
	ListOptions(ctx context.Context, submissionID string) ([]*models.QuoteOption, error)
	DeleteOption(ctx context.Context, id string) error
}

// EndorsementStorage persists endorsements.
type EndorsementStorage interface {
	GetEndorsement(ctx context.Context, id string) (*models.Endorsement, error)
	SaveEndorsement(ctx context.Context, e *models.Endorsement) error
	ListEndorsements(ctx context.Context, submissionID string) ([]*models.Endorsement, error)
	DeleteEndorsement(ctx context.Context, id string) error
}

// SubjectivityStorage persists subjectivities.
type SubjectivityStorage interface {
	GetSubjectivity(ctx context.Context, id string) (*models.Subjectivity, error)
	SaveSubjectivity(ctx context.Context, s *models.Subjectivity) error
	ListSubjectivities(ctx context.Context, submissionID string) ([]*models.Subjectivity, error)
	DeleteSubjectivity(ctx context.Context, id string) error
}

// InternalStore manages underwriter accounts, per-user config, and
// system-level KV.
type InternalStore interface {
	// User accounts
	GetUser(ctx context.Context, username string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]string, error)

	// Per-user key-value config
	GetUserKV(ctx context.Context, userID, key string) (*models.UserKeyValue, error)
	SetUserKV(ctx context.Context, userID, key, value string) error
	DeleteUserKV(ctx context.Context, userID, key string) error
	ListUserKV(ctx context.Context, userID string) ([]*models.UserKeyValue, error)

	// System key-value (non-user-scoped)
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}
