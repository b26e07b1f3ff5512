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

type submissionStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSubmissionStorage creates a new SubmissionStorage backed by BadgerHold.
func NewSubmissionStorage(store *Store, logger *common.Logger) *submissionStorage {
	return &submissionStorage{store: store, logger: logger}
}

func (s *submissionStorage) GetSubmission(_ context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	err := s.store.db.Get(id, &sub)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("submission '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get submission '%s': %w", id, err)
	}
	return &sub, nil
}

func (s *submissionStorage) SaveSubmission(_ context.Context, sub *models.Submission) error {
	sub.UpdatedAt = time.Now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = sub.UpdatedAt
	}
	if sub.Status == "" {
		sub.Status = models.SubmissionOpen
	}

	if err := s.store.db.Upsert(sub.ID, sub); err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	s.logger.Debug().Str("id", sub.ID).Str("insured", sub.Insured).Msg("Submission saved")
	return nil
}

func (s *submissionStorage) ListSubmissions(_ context.Context) ([]*models.Submission, error) {
	var subs []models.Submission
	if err := s.store.db.Find(&subs, nil); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	out := make([]*models.Submission, len(subs))
	for i := range subs {
		out[i] = &subs[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *submissionStorage) DeleteSubmission(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.Submission{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete submission '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Submission deleted")
	return nil
}
