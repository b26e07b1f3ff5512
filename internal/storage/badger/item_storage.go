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

type endorsementStorage struct {
	store  *Store
	logger *common.Logger
}

// NewEndorsementStorage creates a new EndorsementStorage backed by BadgerHold.
func NewEndorsementStorage(store *Store, logger *common.Logger) *endorsementStorage {
	return &endorsementStorage{store: store, logger: logger}
}

func (s *endorsementStorage) GetEndorsement(_ context.Context, id string) (*models.Endorsement, error) {
	var e models.Endorsement
	err := s.store.db.Get(id, &e)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("endorsement '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get endorsement '%s': %w", id, err)
	}
	return &e, nil
}

func (s *endorsementStorage) SaveEndorsement(_ context.Context, e *models.Endorsement) error {
	e.UpdatedAt = time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = e.UpdatedAt
	}
	e.QuoteIDs = models.NormalizeQuoteIDs(e.QuoteIDs)

	if err := s.store.db.Upsert(e.ID, e); err != nil {
		return fmt.Errorf("failed to save endorsement: %w", err)
	}
	s.logger.Debug().Str("id", e.ID).Str("title", e.Title).Int("links", len(e.QuoteIDs)).Msg("Endorsement saved")
	return nil
}

func (s *endorsementStorage) ListEndorsements(_ context.Context, submissionID string) ([]*models.Endorsement, error) {
	var items []models.Endorsement
	query := badgerhold.Where("SubmissionID").Eq(submissionID).Index("SubmissionID")
	if err := s.store.db.Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to list endorsements for submission '%s': %w", submissionID, err)
	}
	out := make([]*models.Endorsement, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *endorsementStorage) DeleteEndorsement(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.Endorsement{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete endorsement '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Endorsement deleted")
	return nil
}

type subjectivityStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSubjectivityStorage creates a new SubjectivityStorage backed by BadgerHold.
func NewSubjectivityStorage(store *Store, logger *common.Logger) *subjectivityStorage {
	return &subjectivityStorage{store: store, logger: logger}
}

func (s *subjectivityStorage) GetSubjectivity(_ context.Context, id string) (*models.Subjectivity, error) {
	var sub models.Subjectivity
	err := s.store.db.Get(id, &sub)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("subjectivity '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get subjectivity '%s': %w", id, err)
	}
	return &sub, nil
}

func (s *subjectivityStorage) SaveSubjectivity(_ context.Context, sub *models.Subjectivity) error {
	sub.UpdatedAt = time.Now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = sub.UpdatedAt
	}
	if sub.Status == "" {
		sub.Status = models.SubjectivityPending
	}
	sub.QuoteIDs = models.NormalizeQuoteIDs(sub.QuoteIDs)

	if err := s.store.db.Upsert(sub.ID, sub); err != nil {
		return fmt.Errorf("failed to save subjectivity: %w", err)
	}
	s.logger.Debug().Str("id", sub.ID).Int("links", len(sub.QuoteIDs)).Msg("Subjectivity saved")
	return nil
}

func (s *subjectivityStorage) ListSubjectivities(_ context.Context, submissionID string) ([]*models.Subjectivity, error) {
	var items []models.Subjectivity
	query := badgerhold.Where("SubmissionID").Eq(submissionID).Index("SubmissionID")
	if err := s.store.db.Find(&items, query); err != nil {
		return nil, fmt.Errorf("failed to list subjectivities for submission '%s': %w", submissionID, err)
	}
	out := make([]*models.Subjectivity, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out, nil
}

func (s *subjectivityStorage) DeleteSubjectivity(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.Subjectivity{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete subjectivity '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Subjectivity deleted")
	return nil
}
