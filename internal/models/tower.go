// Package models defines data structures for Strata
package models

import "strings"

// DefaultOursMarker is the fallback carrier marker identifying our paper in a
// tower when no marker is configured. Matching is case-insensitive substring.
const DefaultOursMarker = "CMAI"

// DefaultRetention is the assumed self-insured retention for a primary ground
// layer when the submission does not specify one.
const DefaultRetention = 25000.0

// TowerLayer is a single layer in an insurance tower. Layers are stored
// ground-up: index 0 sits directly above the insured's retention.
type TowerLayer struct {
	Carrier    string  `json:"carrier"`
	Limit      float64 `json:"limit"`
	QuotaShare float64 `json:"quota_share,omitempty"` // total size of the shared band; layers with equal values are siblings
	Attachment float64 `json:"attachment"`            // derived — recomputed on every tower edit, never authoritative input
	Retention  float64 `json:"retention,omitempty"`   // meaningful on the ground layer of a primary tower only
	Premium    float64 `json:"premium,omitempty"`
}

// InQuotaShare reports whether the layer participates in a quota-share band.
func (l TowerLayer) InQuotaShare() bool {
	return l.QuotaShare > 0
}

// MatchesCarrier reports whether the layer's carrier name contains the given
// marker, case-insensitively.
func (l TowerLayer) MatchesCarrier(marker string) bool {
	if marker == "" {
		marker = DefaultOursMarker
	}
	return strings.Contains(strings.ToUpper(l.Carrier), strings.ToUpper(marker))
}

// Tower is an ordered stack of layers, ground layer first.
type Tower []TowerLayer

// OursIndex returns the index of the first layer whose carrier matches the
// marker, or -1 when no layer is ours.
func (t Tower) OursIndex(marker string) int {
	for i, l := range t {
		if l.MatchesCarrier(marker) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the tower.
func (t Tower) Clone() Tower {
	if t == nil {
		return nil
	}
	out := make(Tower, len(t))
	copy(out, t)
	return out
}

// TotalLimit returns the sum of all layer limits, counting each quota-share
// band once at its shared total rather than stacking the participants.
func (t Tower) TotalLimit() float64 {
	var sum float64
	for i := 0; i < len(t); {
		if qs := t[i].QuotaShare; qs > 0 {
			sum += qs
			j := i
			for j < len(t) && t[j].QuotaShare == qs {
				j++
			}
			i = j
			continue
		}
		sum += t[i].Limit
		i++
	}
	return sum
}
