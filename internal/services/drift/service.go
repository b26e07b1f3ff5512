package drift

import (
	"context"
	"fmt"
	"time"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
)

// Service implements DriftService
type Service struct {
	storage interfaces.StorageManager
	towers  interfaces.TowerService
	logger  *common.Logger
	now     func() time.Time
}

var _ interfaces.DriftService = (*Service)(nil)

// NewService creates a new drift service
func NewService(storage interfaces.StorageManager, towers interfaces.TowerService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		towers:  towers,
		logger:  logger,
		now:     time.Now,
	}
}

// SubmissionDrift computes the full peer comparison report for a submission:
// one endorsement comparison and one subjectivity comparison per option.
func (s *Service) SubmissionDrift(ctx context.Context, submissionID string) (*models.DriftReport, error) {
	options, err := s.storage.Options().ListOptions(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	endorsements, err := s.storage.Endorsements().ListEndorsements(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list endorsements: %w", err)
	}
	subjectivities, err := s.storage.Subjectivities().ListSubjectivities(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjectivities: %w", err)
	}

	endorsementItems := make([]models.LinkedItem, len(endorsements))
	for i, e := range endorsements {
		endorsementItems[i] = e
	}
	subjectivityItems := make([]models.LinkedItem, len(subjectivities))
	for i, sub := range subjectivities {
		subjectivityItems[i] = sub
	}

	report := &models.DriftReport{
		SubmissionID:   submissionID,
		GeneratedAt:    s.now().UTC(),
		Endorsements:   ComputePeerComparison(options, endorsementItems, s.towers.StructurePosition),
		Subjectivities: ComputePeerComparison(options, subjectivityItems, s.towers.StructurePosition),
	}

	s.logger.Debug().
		Str("submission_id", submissionID).
		Int("options", len(options)).
		Int("endorsements", len(endorsements)).
		Int("subjectivities", len(subjectivities)).
		Msg("Computed drift report")

	return report, nil
}

// ApplyEndorsementSelection replaces an endorsement's option link set with
// the given target set. An empty target set deletes the endorsement outright
// rather than leaving an orphan; the returned endorsement is nil in that
// case.
func (s *Service) ApplyEndorsementSelection(ctx context.Context, endorsementID string, quoteIDs []string) (*models.Endorsement, error) {
	e, err := s.storage.Endorsements().GetEndorsement(ctx, endorsementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get endorsement: %w", err)
	}

	target := models.NormalizeQuoteIDs(quoteIDs)
	if len(target) == 0 {
		if err := s.storage.Endorsements().DeleteEndorsement(ctx, endorsementID); err != nil {
			return nil, fmt.Errorf("failed to delete orphaned endorsement: %w", err)
		}
		s.logger.Info().Str("endorsement_id", endorsementID).Msg("Deleted endorsement unlinked from all options")
		return nil, nil
	}

	if err := s.validateOptionIDs(ctx, e.SubmissionID, target); err != nil {
		return nil, err
	}

	e.QuoteIDs = target
	e.UpdatedAt = s.now().UTC()
	if err := s.storage.Endorsements().SaveEndorsement(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save endorsement: %w", err)
	}
	return e, nil
}

// ApplySubjectivitySelection is the subjectivity counterpart of
// ApplyEndorsementSelection, with the same orphan-delete rule.
func (s *Service) ApplySubjectivitySelection(ctx context.Context, subjectivityID string, quoteIDs []string) (*models.Subjectivity, error) {
	sub, err := s.storage.Subjectivities().GetSubjectivity(ctx, subjectivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjectivity: %w", err)
	}

	target := models.NormalizeQuoteIDs(quoteIDs)
	if len(target) == 0 {
		if err := s.storage.Subjectivities().DeleteSubjectivity(ctx, subjectivityID); err != nil {
			return nil, fmt.Errorf("failed to delete orphaned subjectivity: %w", err)
		}
		s.logger.Info().Str("subjectivity_id", subjectivityID).Msg("Deleted subjectivity unlinked from all options")
		return nil, nil
	}

	if err := s.validateOptionIDs(ctx, sub.SubmissionID, target); err != nil {
		return nil, err
	}

	sub.QuoteIDs = target
	sub.UpdatedAt = s.now().UTC()
	if err := s.storage.Subjectivities().SaveSubjectivity(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subjectivity: %w", err)
	}
	return sub, nil
}

// AlignOption links the option to every item its same-position peers carry
// that it is missing, then returns the recomputed drift report. Unique items
// are left alone; alignment only adds links, never removes them.
func (s *Service) AlignOption(ctx context.Context, optionID string) (*models.DriftReport, error) {
	option, err := s.storage.Options().GetOption(ctx, optionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get option: %w", err)
	}

	report, err := s.SubmissionDrift(ctx, option.SubmissionID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	linked := 0

	if cmp, ok := report.Endorsements[optionID]; ok {
		for _, itemID := range cmp.Missing {
			e, err := s.storage.Endorsements().GetEndorsement(ctx, itemID)
			if err != nil {
				return nil, fmt.Errorf("failed to get endorsement %s: %w", itemID, err)
			}
			e.QuoteIDs = models.NormalizeQuoteIDs(append(e.QuoteIDs, optionID))
			e.UpdatedAt = now
			if err := s.storage.Endorsements().SaveEndorsement(ctx, e); err != nil {
				return nil, fmt.Errorf("failed to save endorsement %s: %w", itemID, err)
			}
			linked++
		}
	}
	if cmp, ok := report.Subjectivities[optionID]; ok {
		for _, itemID := range cmp.Missing {
			sub, err := s.storage.Subjectivities().GetSubjectivity(ctx, itemID)
			if err != nil {
				return nil, fmt.Errorf("failed to get subjectivity %s: %w", itemID, err)
			}
			sub.QuoteIDs = models.NormalizeQuoteIDs(append(sub.QuoteIDs, optionID))
			sub.UpdatedAt = now
			if err := s.storage.Subjectivities().SaveSubjectivity(ctx, sub); err != nil {
				return nil, fmt.Errorf("failed to save subjectivity %s: %w", itemID, err)
			}
			linked++
		}
	}

	s.logger.Info().
		Str("option_id", optionID).
		Int("items_linked", linked).
		Msg("Aligned option to peers")

	return s.SubmissionDrift(ctx, option.SubmissionID)
}

// validateOptionIDs rejects link targets that are not options of the item's
// submission.
func (s *Service) validateOptionIDs(ctx context.Context, submissionID string, target models.QuoteIDList) error {
	options, err := s.storage.Options().ListOptions(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("failed to list options: %w", err)
	}
	known := make(map[string]bool, len(options))
	for _, o := range options {
		known[o.ID] = true
	}
	for _, id := range target {
		if !known[id] {
			return fmt.Errorf("option %s does not belong to submission %s", id, submissionID)
		}
	}
	return nil
}
