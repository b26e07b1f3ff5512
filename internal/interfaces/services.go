package interfaces

import (
	"context"
	"time"

	"github.com/cmai/strata/internal/models"
)

// TowerService derives attachment points, positions, and display names from
// tower structures.
type TowerService interface {
	CalculateAttachment(layers models.Tower, targetIndex int) float64
	RecalculateAttachments(layers models.Tower) models.Tower
	StructurePosition(option *models.QuoteOption) models.Position
	OptionName(option *models.QuoteOption) string
	DisplayName(option *models.QuoteOption) string
	RenderChart(options []*models.QuoteOption) ([]byte, error)
}

// OptionService manages the quote option lifecycle.
type OptionService interface {
	CreateOption(ctx context.Context, submissionID string) (*models.QuoteOption, error)
	GetOption(ctx context.Context, id string) (*models.QuoteOption, error)
	ListOptions(ctx context.Context, submissionID string) ([]*models.QuoteOption, error)
	CloneOption(ctx context.Context, id string) (*models.QuoteOption, error)
	UpdateTower(ctx context.Context, id string, tower models.Tower) (*models.QuoteOption, error)
	RenameOption(ctx context.Context, id, name string) (*models.QuoteOption, error)
	SetRetroSchedule(ctx context.Context, id string, entries []models.RetroScheduleEntry) (*models.QuoteOption, error)
	SetCommission(ctx context.Context, id string, pct float64) (*models.QuoteOption, error)
	BindOption(ctx context.Context, id string) (*models.QuoteOption, error)
	DeleteOption(ctx context.Context, id string) error
}

// DriftService computes peer comparisons and applies item-to-option link
// selections.
type DriftService interface {
	SubmissionDrift(ctx context.Context, submissionID string) (*models.DriftReport, error)
	ApplyEndorsementSelection(ctx context.Context, endorsementID string, quoteIDs []string) (*models.Endorsement, error)
	ApplySubjectivitySelection(ctx context.Context, subjectivityID string, quoteIDs []string) (*models.Subjectivity, error)
	AlignOption(ctx context.Context, optionID string) (*models.DriftReport, error)
}

// SubmissionService manages submissions.
type SubmissionService interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	ListSubmissions(ctx context.Context) ([]*models.Submission, error)
	UpdateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, id string) error
}

// AuthService manages underwriter accounts and JWT sessions.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (string, *models.User, error)
	ValidateToken(tokenString string) (*models.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*models.User, error)
	EnsureBootstrapUser(ctx context.Context) error
	TokenExpiry() time.Duration
}
