package submission

import (
	"context"
	"testing"
	"time"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
	"github.com/cmai/strata/internal/storage"
)

func newTestService(t *testing.T) (*Service, interfaces.StorageManager) {
	t.Helper()
	logger := common.NewLogger("error")
	manager, err := storage.NewManagerWithPaths(logger, t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("NewManagerWithPaths failed: %v", err)
	}
	t.Cleanup(func() { manager.Close() })
	return NewService(manager, logger), manager
}

func TestCreateSubmission(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, &models.Submission{Insured: "Acme Widgets Inc"})
	if err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected generated id")
	}
	if sub.Status != models.SubmissionOpen {
		t.Errorf("status = %q, want open", sub.Status)
	}
	if sub.EffectiveDate.IsZero() {
		t.Error("expected defaulted effective date")
	}

	if _, err := svc.CreateSubmission(ctx, &models.Submission{}); err == nil {
		t.Error("expected error for missing insured")
	}
}

func TestUpdateSubmission_BoundStatusSticks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, &models.Submission{Insured: "Acme Widgets Inc"})
	if err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}

	sub.Status = models.SubmissionBound
	if _, err := svc.UpdateSubmission(ctx, sub); err != nil {
		t.Fatalf("UpdateSubmission failed: %v", err)
	}

	sub.Status = models.SubmissionOpen
	if _, err := svc.UpdateSubmission(ctx, sub); err == nil {
		t.Error("expected error unbinding a bound submission")
	}
}

func TestUpdateSubmission_FieldChanges(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, &models.Submission{Insured: "Acme Widgets Inc", Broker: "Marsh"})
	if err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}

	effective := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateSubmission(ctx, &models.Submission{
		ID:            sub.ID,
		Insured:       "Acme Holdings LLC",
		Broker:        "Aon",
		EffectiveDate: effective,
		Status:        models.SubmissionQuoted,
	})
	if err != nil {
		t.Fatalf("UpdateSubmission failed: %v", err)
	}
	if updated.Insured != "Acme Holdings LLC" || updated.Broker != "Aon" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.EffectiveDate.Equal(effective) {
		t.Errorf("effective date = %v, want %v", updated.EffectiveDate, effective)
	}
	if updated.Status != models.SubmissionQuoted {
		t.Errorf("status = %q, want quoted", updated.Status)
	}
}

func TestDeleteSubmission_Cascades(t *testing.T) {
	svc, manager := newTestService(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, &models.Submission{Insured: "Acme Widgets Inc"})
	if err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}
	if err := manager.Options().SaveOption(ctx, &models.QuoteOption{ID: "opt-1", SubmissionID: sub.ID}); err != nil {
		t.Fatalf("seed option failed: %v", err)
	}
	if err := manager.Endorsements().SaveEndorsement(ctx, &models.Endorsement{ID: "end-1", SubmissionID: sub.ID, Title: "T", QuoteIDs: models.QuoteIDList{"opt-1"}}); err != nil {
		t.Fatalf("seed endorsement failed: %v", err)
	}
	if err := manager.Subjectivities().SaveSubjectivity(ctx, &models.Subjectivity{ID: "subj-1", SubmissionID: sub.ID, Text: "T", QuoteIDs: models.QuoteIDList{"opt-1"}}); err != nil {
		t.Fatalf("seed subjectivity failed: %v", err)
	}

	if err := svc.DeleteSubmission(ctx, sub.ID); err != nil {
		t.Fatalf("DeleteSubmission failed: %v", err)
	}

	if _, err := manager.Submissions().GetSubmission(ctx, sub.ID); err == nil {
		t.Error("submission still present after delete")
	}
	if _, err := manager.Options().GetOption(ctx, "opt-1"); err == nil {
		t.Error("option still present after cascade delete")
	}
	if _, err := manager.Endorsements().GetEndorsement(ctx, "end-1"); err == nil {
		t.Error("endorsement still present after cascade delete")
	}
	if _, err := manager.Subjectivities().GetSubjectivity(ctx, "subj-1"); err == nil {
		t.Error("subjectivity still present after cascade delete")
	}
}

func TestDeleteSubmission_BoundRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sub, err := svc.CreateSubmission(ctx, &models.Submission{Insured: "Acme Widgets Inc"})
	if err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}
	sub.Status = models.SubmissionBound
	if _, err := svc.UpdateSubmission(ctx, sub); err != nil {
		t.Fatalf("UpdateSubmission failed: %v", err)
	}

	if err := svc.DeleteSubmission(ctx, sub.ID); err == nil {
		t.Error("expected error deleting bound submission")
	}
}
