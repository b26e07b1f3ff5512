package drift

import (
	"testing"

	"github.com/cmai/strata/internal/models"
)

func classifyByStoredFlag(o *models.QuoteOption) models.Position {
	if o.Position == models.PositionExcess {
		return models.PositionExcess
	}
	return models.PositionPrimary
}

func endorsementItem(id, title string, quoteIDs ...string) models.LinkedItem {
	return &models.Endorsement{ID: id, Title: title, QuoteIDs: models.NormalizeQuoteIDs(quoteIDs)}
}

func TestComputePeerComparison_TwoPrimaries(t *testing.T) {
	// P1 carries Cyber Extortion and Breach Response, P2 only Cyber
	// Extortion. P2 is missing Breach Response and aligned on Cyber
	// Extortion.
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
		{ID: "P2", Position: models.PositionPrimary},
	}
	items := []models.LinkedItem{
		endorsementItem("e-cyber", "Cyber Extortion", "P1", "P2"),
		endorsementItem("e-breach", "Breach Response", "P1"),
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	p2 := result["P2"]
	if p2.NoPeers {
		t.Error("P2 has a sibling, NoPeers should be false")
	}
	if len(p2.Missing) != 1 || p2.Missing[0] != "e-breach" {
		t.Errorf("P2 missing = %v, want [e-breach]", p2.Missing)
	}
	if len(p2.Unique) != 0 {
		t.Errorf("P2 unique = %v, want empty", p2.Unique)
	}
	if len(p2.Aligned) != 1 || p2.Aligned[0] != "e-cyber" {
		t.Errorf("P2 aligned = %v, want [e-cyber]", p2.Aligned)
	}

	p1 := result["P1"]
	if len(p1.Missing) != 0 {
		t.Errorf("P1 missing = %v, want empty", p1.Missing)
	}
	if len(p1.Unique) != 1 || p1.Unique[0] != "e-breach" {
		t.Errorf("P1 unique = %v, want [e-breach]", p1.Unique)
	}
}

func TestComputePeerComparison_PositionGroupsAreIndependent(t *testing.T) {
	// An excess option never counts as a sibling of a primary option, so a
	// primary-only endorsement shows as missing only within the primary
	// group.
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
		{ID: "P2", Position: models.PositionPrimary},
		{ID: "X1", Position: models.PositionExcess},
	}
	items := []models.LinkedItem{
		endorsementItem("e-war", "War Exclusion", "P1"),
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	if len(result["P2"].Missing) != 1 || result["P2"].Missing[0] != "e-war" {
		t.Errorf("P2 missing = %v, want [e-war]", result["P2"].Missing)
	}
	x1 := result["X1"]
	if len(x1.Missing) != 0 || len(x1.Unique) != 0 || len(x1.Aligned) != 0 {
		t.Errorf("X1 should have empty sets, got %+v", x1)
	}
	if !x1.NoPeers {
		t.Error("X1 is the only excess option, NoPeers should be true")
	}
}

func TestComputePeerComparison_SiblingUnionNotIntersection(t *testing.T) {
	// An item linked to just one of three siblings still counts as expected
	// for the others.
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
		{ID: "P2", Position: models.PositionPrimary},
		{ID: "P3", Position: models.PositionPrimary},
	}
	items := []models.LinkedItem{
		endorsementItem("e-rare", "Rare Clause", "P3"),
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	for _, id := range []string{"P1", "P2"} {
		if len(result[id].Missing) != 1 || result[id].Missing[0] != "e-rare" {
			t.Errorf("%s missing = %v, want [e-rare]", id, result[id].Missing)
		}
	}
	if len(result["P3"].Unique) != 1 || result["P3"].Unique[0] != "e-rare" {
		t.Errorf("P3 unique = %v, want [e-rare]", result["P3"].Unique)
	}
}

func TestComputePeerComparison_SetAlgebra(t *testing.T) {
	// missing and unique never intersect; mine is exactly aligned + unique.
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
		{ID: "P2", Position: models.PositionPrimary},
		{ID: "P3", Position: models.PositionPrimary},
	}
	items := []models.LinkedItem{
		endorsementItem("e-1", "Alpha", "P1", "P2"),
		endorsementItem("e-2", "Bravo", "P2", "P3"),
		endorsementItem("e-3", "Charlie", "P1"),
		endorsementItem("e-4", "Delta", "P1", "P2", "P3"),
	}

	mine := map[string]map[string]bool{
		"P1": {"e-1": true, "e-3": true, "e-4": true},
		"P2": {"e-1": true, "e-2": true, "e-4": true},
		"P3": {"e-2": true, "e-4": true},
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	for id, cmp := range result {
		inMissing := make(map[string]bool)
		for _, itemID := range cmp.Missing {
			inMissing[itemID] = true
		}
		for _, itemID := range cmp.Unique {
			if inMissing[itemID] {
				t.Errorf("%s: item %s in both missing and unique", id, itemID)
			}
		}

		partition := make(map[string]bool)
		for _, itemID := range cmp.Aligned {
			partition[itemID] = true
		}
		for _, itemID := range cmp.Unique {
			if partition[itemID] {
				t.Errorf("%s: item %s in both aligned and unique", id, itemID)
			}
			partition[itemID] = true
		}
		if len(partition) != len(mine[id]) {
			t.Errorf("%s: aligned+unique = %v, want exactly mine %v", id, partition, mine[id])
		}
		for itemID := range partition {
			if !mine[id][itemID] {
				t.Errorf("%s: item %s not actually linked", id, itemID)
			}
		}
	}
}

func TestComputePeerComparison_NoPeers(t *testing.T) {
	// Single option in its group: report the no-peers sentinel, everything
	// it links lands in unique, nothing in missing or aligned.
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
	}
	items := []models.LinkedItem{
		endorsementItem("e-1", "Alpha", "P1"),
		endorsementItem("e-2", "Bravo", "P1"),
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	p1 := result["P1"]
	if !p1.NoPeers {
		t.Error("single option should report NoPeers")
	}
	if len(p1.Missing) != 0 || len(p1.Aligned) != 0 {
		t.Errorf("no-peers option should have empty missing/aligned, got %+v", p1)
	}
	if len(p1.Unique) != 2 {
		t.Errorf("no-peers unique = %v, want both linked items", p1.Unique)
	}
}

func TestComputePeerComparison_OrderedByLabel(t *testing.T) {
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
		{ID: "P2", Position: models.PositionPrimary},
	}
	items := []models.LinkedItem{
		endorsementItem("e-z", "Alpha Clause", "P1"),
		endorsementItem("e-a", "Zulu Clause", "P1"),
		endorsementItem("e-m", "Mike Clause", "P1"),
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	missing := result["P2"].Missing
	want := []string{"e-z", "e-m", "e-a"} // Alpha, Mike, Zulu
	if len(missing) != 3 {
		t.Fatalf("P2 missing = %v, want 3 items", missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %s, want %s (label order)", i, missing[i], want[i])
		}
	}
}

func TestComputePeerComparison_IgnoresLinksToUnknownOptions(t *testing.T) {
	// Stale links to deleted options do not resurrect phantom siblings.
	options := []*models.QuoteOption{
		{ID: "P1", Position: models.PositionPrimary},
		{ID: "P2", Position: models.PositionPrimary},
	}
	items := []models.LinkedItem{
		endorsementItem("e-1", "Alpha", "deleted-option", "P1"),
	}

	result := ComputePeerComparison(options, items, classifyByStoredFlag)

	if len(result["P2"].Missing) != 1 || result["P2"].Missing[0] != "e-1" {
		t.Errorf("P2 missing = %v, want [e-1]", result["P2"].Missing)
	}
}

func TestComputePeerComparison_Empty(t *testing.T) {
	if result := ComputePeerComparison(nil, nil, classifyByStoredFlag); len(result) != 0 {
		t.Errorf("empty inputs = %v, want empty map", result)
	}
}
