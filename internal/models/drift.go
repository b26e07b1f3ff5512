package models

import "time"

// PeerComparison captures how one option's linked items compare against the
// union of items linked to its same-position siblings.
//
// Missing: siblings have it, this option does not.
// Unique: this option has it, no sibling does.
// Aligned: both this option and at least one sibling have it.
//
// Item IDs in each set are ordered by item label for deterministic output.
type PeerComparison struct {
	OptionID string   `json:"option_id"`
	Position Position `json:"position"`

	// NoPeers is true when the option has no same-position siblings. In that
	// case Missing and Aligned are empty and Unique holds every linked item;
	// callers should suppress difference badges rather than flag everything.
	NoPeers bool `json:"no_peers"`

	Missing []string `json:"missing"`
	Unique  []string `json:"unique"`
	Aligned []string `json:"aligned"`
}

// DriftReport is the full peer comparison for a submission: one entry per
// option for endorsements and one per option for subjectivities.
type DriftReport struct {
	SubmissionID   string                    `json:"submission_id"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Endorsements   map[string]PeerComparison `json:"endorsements"`
	Subjectivities map[string]PeerComparison `json:"subjectivities"`
}
