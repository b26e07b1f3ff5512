// Package submission manages submissions and their cascade deletion.
package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
)

// Service implements SubmissionService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	newID   func() string
}

var _ interfaces.SubmissionService = (*Service)(nil)

// NewService creates a new submission service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// CreateSubmission validates and persists a new submission.
func (s *Service) CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	if sub == nil || sub.Insured == "" {
		return nil, fmt.Errorf("insured name is required")
	}
	if sub.ID == "" {
		sub.ID = s.newID()
	}
	if sub.EffectiveDate.IsZero() {
		sub.EffectiveDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	sub.Status = models.SubmissionOpen

	if err := s.storage.Submissions().SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", sub.ID).Str("insured", sub.Insured).Msg("Submission created")
	return sub, nil
}

// GetSubmission returns a single submission.
func (s *Service) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	return s.storage.Submissions().GetSubmission(ctx, id)
}

// ListSubmissions returns all submissions.
func (s *Service) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	return s.storage.Submissions().ListSubmissions(ctx)
}

// UpdateSubmission updates insured, broker, effective date, and status.
// Status moves are unrestricted except that a bound submission stays bound.
func (s *Service) UpdateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	if sub == nil || sub.ID == "" {
		return nil, fmt.Errorf("submission id is required")
	}
	existing, err := s.storage.Submissions().GetSubmission(ctx, sub.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.SubmissionBound && sub.Status != "" && sub.Status != models.SubmissionBound {
		return nil, fmt.Errorf("submission '%s' is bound; status cannot change", sub.ID)
	}

	if sub.Insured != "" {
		existing.Insured = sub.Insured
	}
	existing.Broker = sub.Broker
	if !sub.EffectiveDate.IsZero() {
		existing.EffectiveDate = sub.EffectiveDate
	}
	if sub.Status != "" {
		existing.Status = sub.Status
	}

	if err := s.storage.Submissions().SaveSubmission(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteSubmission removes a submission along with its options,
// endorsements, and subjectivities. Bound submissions cannot be deleted.
func (s *Service) DeleteSubmission(ctx context.Context, id string) error {
	sub, err := s.storage.Submissions().GetSubmission(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status == models.SubmissionBound {
		return fmt.Errorf("submission '%s' is bound and cannot be deleted", id)
	}

	options, err := s.storage.Options().ListOptions(ctx, id)
	if err != nil {
		return err
	}
	for _, o := range options {
		if err := s.storage.Options().DeleteOption(ctx, o.ID); err != nil {
			return err
		}
	}

	endorsements, err := s.storage.Endorsements().ListEndorsements(ctx, id)
	if err != nil {
		return err
	}
	for _, e := range endorsements {
		if err := s.storage.Endorsements().DeleteEndorsement(ctx, e.ID); err != nil {
			return err
		}
	}

	subjectivities, err := s.storage.Subjectivities().ListSubjectivities(ctx, id)
	if err != nil {
		return err
	}
	for _, subj := range subjectivities {
		if err := s.storage.Subjectivities().DeleteSubjectivity(ctx, subj.ID); err != nil {
			return err
		}
	}

	if err := s.storage.Submissions().DeleteSubmission(ctx, id); err != nil {
		return err
	}
	s.logger.Info().
		Str("id", id).
		Int("options", len(options)).
		Int("endorsements", len(endorsements)).
		Int("subjectivities", len(subjectivities)).
		Msg("Submission deleted")
	return nil
}
