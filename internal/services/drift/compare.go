// Package drift computes peer comparisons between quote options and manages
// item-to-option link selections.
package drift

import (
	"sort"

	"github.com/cmai/strata/internal/models"
)

// ComputePeerComparison compares every option's linked items against the
// union of items linked to its same-position siblings. classify maps an
// option to primary or excess; siblings are the other options in the same
// class.
//
// For each option: missing = items some sibling has that it lacks, unique =
// items only it has, aligned = items shared with at least one sibling. Item
// IDs within each set are ordered by item label, then ID. An option with no
// siblings gets NoPeers set, missing and aligned empty, and unique holding
// everything it links — callers decide whether to surface that.
func ComputePeerComparison(
	options []*models.QuoteOption,
	items []models.LinkedItem,
	classify func(*models.QuoteOption) models.Position,
) map[string]models.PeerComparison {
	result := make(map[string]models.PeerComparison, len(options))
	if len(options) == 0 {
		return result
	}

	positions := make(map[string]models.Position, len(options))
	groups := make(map[models.Position][]string, 2)
	for _, o := range options {
		if o == nil {
			continue
		}
		pos := classify(o)
		positions[o.ID] = pos
		groups[pos] = append(groups[pos], o.ID)
	}

	// Per-option linked item sets, from the items' side of the relation.
	mine := make(map[string]map[string]bool, len(options))
	labels := make(map[string]string, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		labels[item.ItemID()] = item.ItemLabel()
		for _, optID := range item.LinkedQuoteIDs() {
			if _, known := positions[optID]; !known {
				continue
			}
			if mine[optID] == nil {
				mine[optID] = make(map[string]bool)
			}
			mine[optID][item.ItemID()] = true
		}
	}

	for _, o := range options {
		if o == nil {
			continue
		}
		pos := positions[o.ID]
		cmp := models.PeerComparison{
			OptionID: o.ID,
			Position: pos,
			Missing:  []string{},
			Unique:   []string{},
			Aligned:  []string{},
		}

		siblings := 0
		siblingUnion := make(map[string]bool)
		for _, siblingID := range groups[pos] {
			if siblingID == o.ID {
				continue
			}
			siblings++
			for itemID := range mine[siblingID] {
				siblingUnion[itemID] = true
			}
		}

		if siblings == 0 {
			cmp.NoPeers = true
			for itemID := range mine[o.ID] {
				cmp.Unique = append(cmp.Unique, itemID)
			}
			sortByLabel(cmp.Unique, labels)
			result[o.ID] = cmp
			continue
		}

		for itemID := range siblingUnion {
			if !mine[o.ID][itemID] {
				cmp.Missing = append(cmp.Missing, itemID)
			}
		}
		for itemID := range mine[o.ID] {
			if siblingUnion[itemID] {
				cmp.Aligned = append(cmp.Aligned, itemID)
			} else {
				cmp.Unique = append(cmp.Unique, itemID)
			}
		}

		sortByLabel(cmp.Missing, labels)
		sortByLabel(cmp.Unique, labels)
		sortByLabel(cmp.Aligned, labels)
		result[o.ID] = cmp
	}
	return result
}

func sortByLabel(ids []string, labels map[string]string) {
	sort.Slice(ids, func(i, j int) bool {
		li, lj := labels[ids[i]], labels[ids[j]]
		if li != lj {
			return li < lj
		}
		return ids[i] < ids[j]
	})
}
