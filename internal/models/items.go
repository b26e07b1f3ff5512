package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// QuoteIDList is the normalized set of quote option IDs an endorsement or
// subjectivity is linked to. Upstream payloads carry this either as a JSON
// string array or as a Postgres-style curly-brace list ("{id1,id2}"); both
// shapes normalize to a plain string slice here, at the ingestion boundary,
// so nothing deeper ever branches on shape.
type QuoteIDList []string

// UnmarshalJSON accepts both the native array form and the curly-brace
// string form.
func (q *QuoteIDList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*q = NormalizeQuoteIDs(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("quote id list must be an array or a brace-list string: %w", err)
	}
	*q = ParseQuoteIDString(s)
	return nil
}

// ParseQuoteIDString parses a Postgres-style curly-brace list ("{a,b,c}")
// into a normalized id slice. Plain comma-separated strings are accepted too.
func ParseQuoteIDString(s string) QuoteIDList {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if s == "" {
		return QuoteIDList{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(parts[i]), `"`)
	}
	return NormalizeQuoteIDs(parts)
}

// NormalizeQuoteIDs trims, de-duplicates, and sorts ids, dropping empties.
func NormalizeQuoteIDs(ids []string) QuoteIDList {
	seen := make(map[string]bool, len(ids))
	out := make(QuoteIDList, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether the list includes the given option id.
func (q QuoteIDList) Contains(optionID string) bool {
	for _, id := range q {
		if id == optionID {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with the given option id removed.
func (q QuoteIDList) Without(optionID string) QuoteIDList {
	out := make(QuoteIDList, 0, len(q))
	for _, id := range q {
		if id != optionID {
			out = append(out, id)
		}
	}
	return out
}

// EndorsementCategory classifies how an endorsement attaches to a policy.
type EndorsementCategory string

const (
	EndorsementRequired     EndorsementCategory = "required"
	EndorsementAutoAttached EndorsementCategory = "auto_attached"
	EndorsementManuscript   EndorsementCategory = "manuscript"
	EndorsementOther        EndorsementCategory = "other"
)

// ValidEndorsementCategories enumerates accepted category values.
var ValidEndorsementCategories = map[EndorsementCategory]bool{
	EndorsementRequired:     true,
	EndorsementAutoAttached: true,
	EndorsementManuscript:   true,
	EndorsementOther:        true,
}

// Endorsement is a policy-language modification linked to one or more quote
// options. An endorsement with an empty link set is an orphan and is deleted
// rather than persisted.
type Endorsement struct {
	ID           string              `json:"id" badgerhold:"key"`
	SubmissionID string              `json:"submission_id" badgerhold:"index"`
	Code         string              `json:"code,omitempty"`
	Title        string              `json:"title"`
	Category     EndorsementCategory `json:"category"`
	QuoteIDs     QuoteIDList         `json:"quote_ids"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// SubjectivityStatus tracks whether a required condition has been satisfied.
type SubjectivityStatus string

const (
	SubjectivityPending  SubjectivityStatus = "pending"
	SubjectivityReceived SubjectivityStatus = "received"
	SubjectivityWaived   SubjectivityStatus = "waived"
)

// ValidSubjectivityStatuses enumerates accepted status values.
var ValidSubjectivityStatuses = map[SubjectivityStatus]bool{
	SubjectivityPending:  true,
	SubjectivityReceived: true,
	SubjectivityWaived:   true,
}

// Subjectivity is a condition the insurer requires be satisfied, linked to
// one or more quote options. Same orphan rule as endorsements.
type Subjectivity struct {
	ID           string             `json:"id" badgerhold:"key"`
	SubmissionID string             `json:"submission_id" badgerhold:"index"`
	Text         string             `json:"text"`
	Status       SubjectivityStatus `json:"status"`
	QuoteIDs     QuoteIDList        `json:"quote_ids"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// LinkedItem is the common shape the drift engine needs from endorsements
// and subjectivities: an identity, a display label, and the option link set.
type LinkedItem interface {
	ItemID() string
	ItemLabel() string
	LinkedQuoteIDs() QuoteIDList
}

// ItemID implements LinkedItem.
func (e *Endorsement) ItemID() string { return e.ID }

// ItemLabel implements LinkedItem.
func (e *Endorsement) ItemLabel() string { return e.Title }

// LinkedQuoteIDs implements LinkedItem.
func (e *Endorsement) LinkedQuoteIDs() QuoteIDList { return e.QuoteIDs }

// ItemID implements LinkedItem.
func (s *Subjectivity) ItemID() string { return s.ID }

// ItemLabel implements LinkedItem.
func (s *Subjectivity) ItemLabel() string { return s.Text }

// LinkedQuoteIDs implements LinkedItem.
func (s *Subjectivity) LinkedQuoteIDs() QuoteIDList { return s.QuoteIDs }
