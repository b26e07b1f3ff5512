package tower

import (
	"testing"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/models"
)

func newTestService() *Service {
	return NewService(common.NewSilentLogger(), "CMAI")
}

func TestCalculateAttachment_GroundLayerIsZero(t *testing.T) {
	svc := newTestService()

	towers := []models.Tower{
		{{Carrier: "CMAI", Limit: 5000000, Retention: 25000}},
		{{Carrier: "CMAI", Limit: 1000000}, {Carrier: "Other Re", Limit: 5000000}},
		{{Carrier: "A", Limit: 2000000, QuotaShare: 6000000}, {Carrier: "B", Limit: 4000000, QuotaShare: 6000000}},
	}
	for i, tw := range towers {
		if got := svc.CalculateAttachment(tw, 0); got != 0 {
			t.Errorf("tower %d: ground layer attachment = %.0f, want 0", i, got)
		}
	}
}

func TestCalculateAttachment_InvalidInputReturnsZero(t *testing.T) {
	svc := newTestService()
	tw := models.Tower{{Carrier: "CMAI", Limit: 5000000}}

	if got := svc.CalculateAttachment(nil, 0); got != 0 {
		t.Errorf("nil layers = %.0f, want 0", got)
	}
	if got := svc.CalculateAttachment(tw, -1); got != 0 {
		t.Errorf("negative index = %.0f, want 0", got)
	}
	if got := svc.CalculateAttachment(tw, 5); got != 0 {
		t.Errorf("out-of-range index = %.0f, want 0", got)
	}
}

func TestCalculateAttachment_MonotoneWithoutQuotaShare(t *testing.T) {
	// No quota-share anywhere: each layer attaches exactly where the one
	// below it exhausts.
	svc := newTestService()
	tw := models.Tower{
		{Carrier: "Primary Co", Limit: 1000000},
		{Carrier: "CMAI", Limit: 5000000},
		{Carrier: "Excess Re", Limit: 10000000},
		{Carrier: "Top Re", Limit: 25000000},
	}

	for i := 1; i < len(tw); i++ {
		got := svc.CalculateAttachment(tw, i)
		want := svc.CalculateAttachment(tw, i-1) + tw[i-1].Limit
		if got != want {
			t.Errorf("layer %d attachment = %.0f, want %.0f", i, got, want)
		}
	}
}

func TestCalculateAttachment_QuotaShareSiblingsShareAttachment(t *testing.T) {
	// Three carriers split one $15M band above a $10M primary; all three
	// attach at $10M.
	svc := newTestService()
	tw := models.Tower{
		{Carrier: "Primary Co", Limit: 10000000},
		{Carrier: "CMAI", Limit: 5000000, QuotaShare: 15000000},
		{Carrier: "Partner A", Limit: 5000000, QuotaShare: 15000000},
		{Carrier: "Partner B", Limit: 5000000, QuotaShare: 15000000},
	}

	for i := 1; i <= 3; i++ {
		if got := svc.CalculateAttachment(tw, i); got != 10000000 {
			t.Errorf("quota-share member %d attachment = %.0f, want 10000000", i, got)
		}
	}
}

func TestCalculateAttachment_QuotaShareBandCountedOnce(t *testing.T) {
	// A/B/C jointly provide one $5M band; the top layer must attach at
	// 25,000 + 5,000,000, not 25,000 + 15,000,000.
	svc := newTestService()
	tw := models.Tower{
		{Carrier: "Ground Co", Limit: 25000, Retention: 25000},
		{Carrier: "A", Limit: 5000000, QuotaShare: 5000000},
		{Carrier: "B", Limit: 5000000, QuotaShare: 5000000},
		{Carrier: "C", Limit: 5000000, QuotaShare: 5000000},
		{Carrier: "Top Re", Limit: 10000000},
	}

	got := svc.CalculateAttachment(tw, 4)
	if got != 25000+5000000 {
		t.Errorf("top layer attachment = %.0f, want %.0f", got, 25000+5000000.0)
	}
}

func TestCalculateAttachment_AdjacentDistinctQuotaShareBands(t *testing.T) {
	// Two different quota-share bands back to back: equal values group,
	// different values do not.
	svc := newTestService()
	tw := models.Tower{
		{Carrier: "A", Limit: 1000000, QuotaShare: 2000000},
		{Carrier: "B", Limit: 1000000, QuotaShare: 2000000},
		{Carrier: "C", Limit: 1500000, QuotaShare: 3000000},
		{Carrier: "D", Limit: 1500000, QuotaShare: 3000000},
	}

	if got := svc.CalculateAttachment(tw, 1); got != 0 {
		t.Errorf("first band second member attachment = %.0f, want 0", got)
	}
	if got := svc.CalculateAttachment(tw, 2); got != 2000000 {
		t.Errorf("second band attachment = %.0f, want 2000000", got)
	}
	if got := svc.CalculateAttachment(tw, 3); got != 2000000 {
		t.Errorf("second band second member attachment = %.0f, want 2000000", got)
	}
}

func TestRecalculateAttachments_RefreshesAllLayersWithoutMutating(t *testing.T) {
	svc := newTestService()
	tw := models.Tower{
		{Carrier: "Primary Co", Limit: 1000000, Attachment: 999},
		{Carrier: "CMAI", Limit: 5000000, Attachment: 999},
		{Carrier: "Top Re", Limit: 10000000, Attachment: 999},
	}

	out := svc.RecalculateAttachments(tw)

	wantAttachments := []float64{0, 1000000, 6000000}
	for i, want := range wantAttachments {
		if out[i].Attachment != want {
			t.Errorf("layer %d attachment = %.0f, want %.0f", i, out[i].Attachment, want)
		}
	}
	// Input stays untouched.
	for i := range tw {
		if tw[i].Attachment != 999 {
			t.Errorf("input layer %d mutated: attachment = %.0f", i, tw[i].Attachment)
		}
	}
}

func TestRecalculateAttachments_Nil(t *testing.T) {
	svc := newTestService()
	if out := svc.RecalculateAttachments(nil); out != nil {
		t.Errorf("recalculate on nil tower = %v, want nil", out)
	}
}

func TestStructurePosition_PrimaryWhenOursAttachesAtZero(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{{Carrier: "CMAI Specialty", Limit: 5000000, Retention: 25000}},
	}
	if got := svc.StructurePosition(option); got != models.PositionPrimary {
		t.Errorf("position = %q, want primary", got)
	}
}

func TestStructurePosition_ExcessWhenOursAttachesAboveZero(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{
			{Carrier: "Other Primary", Limit: 10000000},
			{Carrier: "CMAI Specialty", Limit: 5000000},
		},
	}
	if got := svc.StructurePosition(option); got != models.PositionExcess {
		t.Errorf("position = %q, want excess", got)
	}
}

func TestStructurePosition_MatchesAttachmentSign(t *testing.T) {
	// The classification is exactly "ours attachment > 0", layer by layer.
	svc := newTestService()
	base := models.Tower{
		{Carrier: "Alpha Re", Limit: 2000000},
		{Carrier: "Beta Re", Limit: 3000000},
		{Carrier: "Gamma Re", Limit: 5000000},
	}

	for i := range base {
		tw := base.Clone()
		tw[i].Carrier = "CMAI"
		option := &models.QuoteOption{Tower: tw}

		attachment := svc.CalculateAttachment(tw, i)
		got := svc.StructurePosition(option)
		if (got == models.PositionExcess) != (attachment > 0) {
			t.Errorf("ours at layer %d: position = %q with attachment %.0f", i, got, attachment)
		}
	}
}

func TestStructurePosition_FallsBackToStoredFlag(t *testing.T) {
	svc := newTestService()

	// Empty tower: stored flag decides.
	option := &models.QuoteOption{Position: models.PositionExcess}
	if got := svc.StructurePosition(option); got != models.PositionExcess {
		t.Errorf("empty tower position = %q, want stored excess", got)
	}

	// No ours layer: stored flag decides.
	option = &models.QuoteOption{
		Position: models.PositionExcess,
		Tower:    models.Tower{{Carrier: "Someone Else", Limit: 5000000}},
	}
	if got := svc.StructurePosition(option); got != models.PositionExcess {
		t.Errorf("no ours layer position = %q, want stored excess", got)
	}

	// No ours layer and no valid stored flag: primary.
	option = &models.QuoteOption{
		Tower: models.Tower{{Carrier: "Someone Else", Limit: 5000000}},
	}
	if got := svc.StructurePosition(option); got != models.PositionPrimary {
		t.Errorf("default position = %q, want primary", got)
	}

	if got := svc.StructurePosition(nil); got != models.PositionPrimary {
		t.Errorf("nil option position = %q, want primary", got)
	}
}
