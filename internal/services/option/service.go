// Package option manages the quote option lifecycle: create, clone, edit,
// bind, delete.
package option

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
)

// DefaultLimit is the limit of the single ground layer a new option starts
// with.
const DefaultLimit = 5000000.0

// Service implements OptionService
type Service struct {
	storage interfaces.StorageManager
	towers  interfaces.TowerService
	logger  *common.Logger
	carrier string
	now     func() time.Time
	newID   func() string
}

var _ interfaces.OptionService = (*Service)(nil)

// NewService creates a new option service. carrier is our carrier name as it
// appears on tower layers.
func NewService(storage interfaces.StorageManager, towers interfaces.TowerService, logger *common.Logger, carrier string) *Service {
	if carrier == "" {
		carrier = models.DefaultOursMarker
	}
	return &Service{
		storage: storage,
		towers:  towers,
		logger:  logger,
		carrier: carrier,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CreateOption creates a new option for a submission with the default tower:
// a single ground layer on our paper at the default limit and retention.
func (s *Service) CreateOption(ctx context.Context, submissionID string) (*models.QuoteOption, error) {
	if _, err := s.storage.Submissions().GetSubmission(ctx, submissionID); err != nil {
		return nil, err
	}

	option := &models.QuoteOption{
		ID:           s.newID(),
		SubmissionID: submissionID,
		Tower: models.Tower{
			{Carrier: s.carrier, Limit: DefaultLimit, Retention: models.DefaultRetention},
		},
	}
	option.Tower = s.towers.RecalculateAttachments(option.Tower)
	option.Position = s.towers.StructurePosition(option)

	if err := s.storage.Options().SaveOption(ctx, option); err != nil {
		return nil, err
	}
	s.logger.Info().Str("option_id", option.ID).Str("submission_id", submissionID).Msg("Option created")
	return option, nil
}

// GetOption returns a single option.
func (s *Service) GetOption(ctx context.Context, id string) (*models.QuoteOption, error) {
	return s.storage.Options().GetOption(ctx, id)
}

// ListOptions returns all options for a submission.
func (s *Service) ListOptions(ctx context.Context, submissionID string) ([]*models.QuoteOption, error) {
	return s.storage.Options().ListOptions(ctx, submissionID)
}

// CloneOption deep-copies an option: tower, retro schedule, commission, and
// name override, plus every endorsement and subjectivity link the source
// carries. Bound state and sold premium are not copied; a clone always starts
// unbound.
func (s *Service) CloneOption(ctx context.Context, id string) (*models.QuoteOption, error) {
	source, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &models.QuoteOption{
		ID:            s.newID(),
		SubmissionID:  source.SubmissionID,
		Position:      source.Position,
		Tower:         source.Tower.Clone(),
		QuoteName:     source.QuoteName,
		CommissionPct: source.CommissionPct,
	}
	if len(source.RetroSchedule) > 0 {
		clone.RetroSchedule = make([]models.RetroScheduleEntry, len(source.RetroSchedule))
		copy(clone.RetroSchedule, source.RetroSchedule)
	}

	if err := s.storage.Options().SaveOption(ctx, clone); err != nil {
		return nil, err
	}

	if err := s.copyItemLinks(ctx, source.SubmissionID, id, clone.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("source_id", id).Str("clone_id", clone.ID).Msg("Option cloned")
	return clone, nil
}

// copyItemLinks adds the clone to every item linked to the source option.
func (s *Service) copyItemLinks(ctx context.Context, submissionID, sourceID, cloneID string) error {
	endorsements, err := s.storage.Endorsements().ListEndorsements(ctx, submissionID)
	if err != nil {
		return err
	}
	for _, e := range endorsements {
		if !e.QuoteIDs.Contains(sourceID) {
			continue
		}
		e.QuoteIDs = models.NormalizeQuoteIDs(append(e.QuoteIDs, cloneID))
		if err := s.storage.Endorsements().SaveEndorsement(ctx, e); err != nil {
			return err
		}
	}

	subjectivities, err := s.storage.Subjectivities().ListSubjectivities(ctx, submissionID)
	if err != nil {
		return err
	}
	for _, sub := range subjectivities {
		if !sub.QuoteIDs.Contains(sourceID) {
			continue
		}
		sub.QuoteIDs = models.NormalizeQuoteIDs(append(sub.QuoteIDs, cloneID))
		if err := s.storage.Subjectivities().SaveSubjectivity(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTower replaces an option's tower, refreshes every attachment, and
// re-derives the stored position. Bound options reject tower edits.
func (s *Service) UpdateTower(ctx context.Context, id string, tower models.Tower) (*models.QuoteOption, error) {
	option, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return nil, err
	}
	if option.Bound {
		return nil, fmt.Errorf("option '%s' is bound; tower edits are not allowed", id)
	}
	for i, layer := range tower {
		if layer.Limit < 0 || layer.QuotaShare < 0 || layer.Retention < 0 || layer.Premium < 0 {
			return nil, fmt.Errorf("layer %d has a negative amount", i)
		}
	}

	option.Tower = s.towers.RecalculateAttachments(tower)
	option.Position = s.towers.StructurePosition(option)

	if err := s.storage.Options().SaveOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// RenameOption sets or clears the user-assigned name override. An empty name
// reverts to the derived tower name.
func (s *Service) RenameOption(ctx context.Context, id, name string) (*models.QuoteOption, error) {
	option, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return nil, err
	}
	option.QuoteName = name
	if err := s.storage.Options().SaveOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// SetRetroSchedule replaces an option's retro schedule after validating each
// entry: explicit_date entries need a date, custom_text entries need text.
func (s *Service) SetRetroSchedule(ctx context.Context, id string, entries []models.RetroScheduleEntry) (*models.QuoteOption, error) {
	for i, entry := range entries {
		if entry.Coverage == "" {
			return nil, fmt.Errorf("retro entry %d missing coverage", i)
		}
		if !models.ValidRetroTypes[entry.RetroType] {
			return nil, fmt.Errorf("retro entry %d has invalid type '%s'", i, entry.RetroType)
		}
		if entry.RetroType == models.RetroExplicitDate && entry.Date == nil {
			return nil, fmt.Errorf("retro entry %d (%s) requires a date", i, entry.Coverage)
		}
		if entry.RetroType == models.RetroCustomText && entry.CustomText == "" {
			return nil, fmt.Errorf("retro entry %d (%s) requires custom text", i, entry.Coverage)
		}
	}

	option, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return nil, err
	}
	option.RetroSchedule = entries
	if err := s.storage.Options().SaveOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// SetCommission sets the brokerage commission percentage.
func (s *Service) SetCommission(ctx context.Context, id string, pct float64) (*models.QuoteOption, error) {
	if pct < 0 || pct > 100 {
		return nil, fmt.Errorf("commission %.2f%% out of range [0, 100]", pct)
	}
	option, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return nil, err
	}
	option.CommissionPct = pct
	if err := s.storage.Options().SaveOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// BindOption marks an option as the bound policy. The premium on our tower
// layer is persisted as the sold premium, the submission moves to bound, and
// further tower edits are rejected. A submission can hold only one bound
// option.
func (s *Service) BindOption(ctx context.Context, id string) (*models.QuoteOption, error) {
	option, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return nil, err
	}
	if option.Bound {
		return nil, fmt.Errorf("option '%s' is already bound", id)
	}

	siblings, err := s.storage.Options().ListOptions(ctx, option.SubmissionID)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.Bound {
			return nil, fmt.Errorf("submission '%s' already has bound option '%s'", option.SubmissionID, sibling.ID)
		}
	}

	option.Bound = true
	if idx := option.Tower.OursIndex(""); idx >= 0 {
		option.SoldPremium = option.Tower[idx].Premium
	}
	if err := s.storage.Options().SaveOption(ctx, option); err != nil {
		return nil, err
	}

	sub, err := s.storage.Submissions().GetSubmission(ctx, option.SubmissionID)
	if err != nil {
		return nil, err
	}
	sub.Status = models.SubmissionBound
	if err := s.storage.Submissions().SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("option_id", id).
		Str("submission_id", option.SubmissionID).
		Float64("sold_premium", option.SoldPremium).
		Msg("Option bound")
	return option, nil
}

// DeleteOption removes an option and unlinks it from every endorsement and
// subjectivity, deleting any item left with no links. Bound options cannot
// be deleted.
func (s *Service) DeleteOption(ctx context.Context, id string) error {
	option, err := s.storage.Options().GetOption(ctx, id)
	if err != nil {
		return err
	}
	if option.Bound {
		return fmt.Errorf("option '%s' is bound and cannot be deleted", id)
	}

	endorsements, err := s.storage.Endorsements().ListEndorsements(ctx, option.SubmissionID)
	if err != nil {
		return err
	}
	for _, e := range endorsements {
		if !e.QuoteIDs.Contains(id) {
			continue
		}
		e.QuoteIDs = e.QuoteIDs.Without(id)
		if len(e.QuoteIDs) == 0 {
			if err := s.storage.Endorsements().DeleteEndorsement(ctx, e.ID); err != nil {
				return err
			}
			continue
		}
		if err := s.storage.Endorsements().SaveEndorsement(ctx, e); err != nil {
			return err
		}
	}

	subjectivities, err := s.storage.Subjectivities().ListSubjectivities(ctx, option.SubmissionID)
	if err != nil {
		return err
	}
	for _, sub := range subjectivities {
		if !sub.QuoteIDs.Contains(id) {
			continue
		}
		sub.QuoteIDs = sub.QuoteIDs.Without(id)
		if len(sub.QuoteIDs) == 0 {
			if err := s.storage.Subjectivities().DeleteSubjectivity(ctx, sub.ID); err != nil {
				return err
			}
			continue
		}
		if err := s.storage.Subjectivities().SaveSubjectivity(ctx, sub); err != nil {
			return err
		}
	}

	if err := s.storage.Options().DeleteOption(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("option_id", id).Msg("Option deleted")
	return nil
}
