package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/models"
)

type optionStorage struct {
	store  *Store
	logger *common.Logger
}

// NewOptionStorage creates a new OptionStorage backed by BadgerHold.
func NewOptionStorage(store *Store, logger *common.Logger) *optionStorage {
	return &optionStorage{store: store, logger: logger}
}

func (s *optionStorage) GetOption(_ context.Context, id string) (*models.QuoteOption, error) {
	var option models.QuoteOption
	err := s.store.db.Get(id, &option)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("option '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get option '%s': %w", id, err)
	}
	return &option, nil
}

func (s *optionStorage) SaveOption(_ context.Context, option *models.QuoteOption) error {
	option.UpdatedAt = time.Now()
	if option.CreatedAt.IsZero() {
		option.CreatedAt = option.UpdatedAt
	}

	if err := s.store.db.Upsert(option.ID, option); err != nil {
		return fmt.Errorf("failed to save option: %w", err)
	}
	s.logger.Debug().Str("id", option.ID).Str("submission_id", option.SubmissionID).Msg("Option saved")
	return nil
}

func (s *optionStorage) ListOptions(_ context.Context, submissionID string) ([]*models.QuoteOption, error) {
	var options []models.QuoteOption
	query := badgerhold.Where("SubmissionID").Eq(submissionID).Index("SubmissionID")
	if err := s.store.db.Find(&options, query); err != nil {
		return nil, fmt.Errorf("failed to list options for submission '%s': %w", submissionID, err)
	}
	out := make([]*models.QuoteOption, len(options))
	for i := range options {
		out[i] = &options[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *optionStorage) DeleteOption(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.QuoteOption{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete option '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Option deleted")
	return nil
}
