package models

import "time"

// Position classifies where a quote option sits in the tower.
type Position string

const (
	PositionPrimary Position = "primary"
	PositionExcess  Position = "excess"
)

// ValidPositions enumerates accepted stored position values.
var ValidPositions = map[Position]bool{
	PositionPrimary: true,
	PositionExcess:  true,
}

// RetroType enumerates retroactive date conventions per coverage.
type RetroType string

const (
	RetroFullPriorActs RetroType = "full_prior_acts"
	RetroInception     RetroType = "inception"
	RetroExplicitDate  RetroType = "explicit_date"
	RetroCustomText    RetroType = "custom_text"
)

// ValidRetroTypes enumerates accepted retro type values.
var ValidRetroTypes = map[RetroType]bool{
	RetroFullPriorActs: true,
	RetroInception:     true,
	RetroExplicitDate:  true,
	RetroCustomText:    true,
}

// RetroScheduleEntry records the retroactive date convention for one coverage.
// Date is required for explicit_date entries, CustomText for custom_text.
type RetroScheduleEntry struct {
	Coverage   string     `json:"coverage"`
	RetroType  RetroType  `json:"retro_type"`
	Date       *time.Time `json:"date,omitempty"`
	CustomText string     `json:"custom_text,omitempty"`
}

// QuoteOption is one quoted structure for a submission: a tower plus its
// commercial terms. Endorsements and subjectivities are linked many-to-many
// and fetched separately.
type QuoteOption struct {
	ID           string `json:"id" badgerhold:"key"`
	SubmissionID string `json:"submission_id" badgerhold:"index"`

	// Position is the stored backend flag. Display logic derives position
	// from the tower and only falls back to this when the tower is empty.
	Position Position `json:"position"`

	Tower Tower `json:"tower"`

	// QuoteName is a user-assigned override; empty means the name is derived
	// from the tower.
	QuoteName string `json:"quote_name,omitempty"`

	Bound         bool                 `json:"bound"`
	SoldPremium   float64              `json:"sold_premium,omitempty"` // persisted at bind; shown instead of layer premium once bound
	CommissionPct float64              `json:"commission_pct,omitempty"`
	RetroSchedule []RetroScheduleEntry `json:"retro_schedule,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubmissionStatus tracks a submission through underwriting.
type SubmissionStatus string

const (
	SubmissionOpen     SubmissionStatus = "open"
	SubmissionQuoted   SubmissionStatus = "quoted"
	SubmissionBound    SubmissionStatus = "bound"
	SubmissionDeclined SubmissionStatus = "declined"
)

// Submission is an account submitted for quoting.
type Submission struct {
	ID            string           `json:"id" badgerhold:"key"`
	Insured       string           `json:"insured"`
	Broker        string           `json:"broker,omitempty"`
	EffectiveDate time.Time        `json:"effective_date"`
	Status        SubmissionStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
