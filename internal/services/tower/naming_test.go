package tower

import (
	"testing"

	"github.com/cmai/strata/internal/models"
)

func TestOptionName_PrimaryGroundLayer(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{{Carrier: "CMAI", Limit: 5000000, Retention: 25000}},
	}
	if got := svc.OptionName(option); got != "$5M x $25K" {
		t.Errorf("name = %q, want %q", got, "$5M x $25K")
	}
}

func TestOptionName_PrimaryDefaultRetention(t *testing.T) {
	// No retention on the ground layer falls back to $25,000.
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{{Carrier: "CMAI", Limit: 2500000}},
	}
	if got := svc.OptionName(option); got != "$2.5M x $25K" {
		t.Errorf("name = %q, want %q", got, "$2.5M x $25K")
	}
}

func TestOptionName_Excess(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{
			{Carrier: "Primary Co", Limit: 10000000},
			{Carrier: "CMAI Specialty", Limit: 5000000},
		},
	}
	if got := svc.OptionName(option); got != "$5M xs $10M" {
		t.Errorf("name = %q, want %q", got, "$5M xs $10M")
	}
}

func TestOptionName_QuotaShareGround(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{
			{Carrier: "CMAI", Limit: 5000000, QuotaShare: 15000000},
			{Carrier: "Partner A", Limit: 5000000, QuotaShare: 15000000},
			{Carrier: "Partner B", Limit: 5000000, QuotaShare: 15000000},
		},
	}
	if got := svc.OptionName(option); got != "$5M po $15M" {
		t.Errorf("name = %q, want %q", got, "$5M po $15M")
	}
}

func TestOptionName_QuotaShareExcess(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{
			{Carrier: "Primary Co", Limit: 10000000},
			{Carrier: "CMAI", Limit: 5000000, QuotaShare: 15000000},
			{Carrier: "Partner A", Limit: 10000000, QuotaShare: 15000000},
		},
	}
	if got := svc.OptionName(option); got != "$5M po $15M xs $10M" {
		t.Errorf("name = %q, want %q", got, "$5M po $15M xs $10M")
	}
}

func TestOptionName_NoOursLayerUsesFirst(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		Tower: models.Tower{{Carrier: "Someone Else", Limit: 1000000, Retention: 50000}},
	}
	if got := svc.OptionName(option); got != "$1M x $50K" {
		t.Errorf("name = %q, want %q", got, "$1M x $50K")
	}
}

func TestOptionName_EmptyTower(t *testing.T) {
	svc := newTestService()
	if got := svc.OptionName(&models.QuoteOption{}); got != "Option" {
		t.Errorf("empty tower name = %q, want %q", got, "Option")
	}
	if got := svc.OptionName(nil); got != "Option" {
		t.Errorf("nil option name = %q, want %q", got, "Option")
	}
}

func TestDisplayName_OverrideWins(t *testing.T) {
	svc := newTestService()
	option := &models.QuoteOption{
		QuoteName: "Preferred Structure",
		Tower:     models.Tower{{Carrier: "CMAI", Limit: 5000000, Retention: 25000}},
	}
	if got := svc.DisplayName(option); got != "Preferred Structure" {
		t.Errorf("display name = %q, want override", got)
	}

	option.QuoteName = ""
	if got := svc.DisplayName(option); got != "$5M x $25K" {
		t.Errorf("display name = %q, want derived %q", got, "$5M x $25K")
	}
}
