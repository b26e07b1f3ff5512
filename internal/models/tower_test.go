package models

import "testing"

func TestMatchesCarrier_CaseInsensitiveSubstring(t *testing.T) {
	layer := TowerLayer{Carrier: "cmai specialty insurance"}
	if !layer.MatchesCarrier("CMAI") {
		t.Error("lowercase carrier should match CMAI marker")
	}
	if !layer.MatchesCarrier("") {
		t.Error("empty marker should fall back to default and match")
	}

	other := TowerLayer{Carrier: "Lloyd's Syndicate 1234"}
	if other.MatchesCarrier("CMAI") {
		t.Error("unrelated carrier should not match")
	}
}

func TestOursIndex(t *testing.T) {
	tw := Tower{
		{Carrier: "Primary Co"},
		{Carrier: "CMAI Specialty"},
		{Carrier: "CMAI Re"},
	}
	if got := tw.OursIndex("CMAI"); got != 1 {
		t.Errorf("OursIndex = %d, want first match 1", got)
	}
	if got := (Tower{}).OursIndex("CMAI"); got != -1 {
		t.Errorf("OursIndex on empty tower = %d, want -1", got)
	}
}

func TestTowerClone_Independent(t *testing.T) {
	tw := Tower{{Carrier: "CMAI", Limit: 5000000}}
	cl := tw.Clone()
	cl[0].Limit = 1

	if tw[0].Limit != 5000000 {
		t.Errorf("clone mutation leaked into original: %.0f", tw[0].Limit)
	}
	if Tower(nil).Clone() != nil {
		t.Error("clone of nil tower should be nil")
	}
}

func TestTotalLimit_QuotaShareBandCountedOnce(t *testing.T) {
	tw := Tower{
		{Carrier: "Ground", Limit: 1000000},
		{Carrier: "A", Limit: 5000000, QuotaShare: 5000000},
		{Carrier: "B", Limit: 5000000, QuotaShare: 5000000},
		{Carrier: "Top", Limit: 10000000},
	}
	if got := tw.TotalLimit(); got != 16000000 {
		t.Errorf("TotalLimit = %.0f, want 16000000", got)
	}
}
