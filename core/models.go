package core

import "time"

// ID is a unique identifier allocated by the sales store.
type ID uint64

// UnknownDate marks an issue whose date could not be found in the source text.
const UnknownDate = "날짜 미상"

// BrandIssueRecord is one brand's most recent marketing signal as produced
// by the issue extractor.
type BrandIssueRecord struct {
	Name        string `json:"name" yaml:"name"`
	Issue       string `json:"issue" yaml:"issue"`
	Description string `json:"description" yaml:"description"`
}

// MediaRecord is one row of the advertising inventory.
// Records are loaded once at index build time and never mutated.
type MediaRecord struct {
	MediaID            int64   `json:"media_id" validate:"gt=0"`
	Name               string  `json:"media_name" validate:"required"`
	Location           string  `json:"location"`
	Specification      string  `json:"specification"`
	SlotCount          int     `json:"slot_count" validate:"gte=0"`
	MediaType          string  `json:"media_type"`
	OperatingHours     string  `json:"operating_hours"`
	GuaranteedExposure int64   `json:"guaranteed_exposure" validate:"gte=0"`
	DurationSeconds    int     `json:"duration_seconds" validate:"gte=0"`
	Quantity           int     `json:"quantity" validate:"gte=0"`
	UnitPrice          float64 `json:"unit_price" validate:"gte=0"`
	ImageDayURL        string  `json:"image_day_url"`
	ImageNightURL      string  `json:"image_night_url"`
	ImageMapURL        string  `json:"image_map_url"`

	// Targeting fields used for matching.
	PopulationTarget     string `json:"population_target"`
	MediaCharacteristics string `json:"media_characteristics"`
	CaseExamples         string `json:"case_examples"`
}

// ScoredMedia pairs a catalog record with its distance from a query.
// Lower distance means a closer match.
type ScoredMedia struct {
	Media    MediaRecord
	Distance float32
}

// MatchResult is the outcome of matching one brand to one medium.
type MatchResult struct {
	MediaID         int64     `json:"media_id" yaml:"media_id"`
	MediaName       string    `json:"media_name" yaml:"media_name"`
	MediaLocation   string    `json:"media_location" yaml:"media_location"`
	MediaType       string    `json:"media_type" yaml:"media_type"`
	MatchReason     string    `json:"match_reason" yaml:"match_reason"`
	SalesCallScript string    `json:"sales_call_script" yaml:"sales_call_script"`
	ProposalEmail   string    `json:"proposal_email" yaml:"proposal_email"`
	GeneratedAt     time.Time `json:"generated_at" yaml:"generated_at"`
	LastUpdatedAt   time.Time `json:"last_updated_at" yaml:"last_updated_at"`
	UsedInSales     bool      `json:"used_in_sales" yaml:"used_in_sales"`
}

// OutcomeStatus tags a per-brand pipeline outcome.
type OutcomeStatus string

const (
	OutcomeMatched OutcomeStatus = "matched"
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome is one row of a pipeline result table.
// Skipped outcomes carry a reason and a nil Match.
type Outcome struct {
	Brand   BrandIssueRecord `json:"brand" yaml:"brand"`
	Status  OutcomeStatus    `json:"status" yaml:"status"`
	Reason  string           `json:"reason,omitempty" yaml:"reason,omitempty"`
	Match   *MatchResult     `json:"match,omitempty" yaml:"match,omitempty"`
	BrandID ID               `json:"brand_id,omitempty" yaml:"brand_id,omitempty"`
	MatchID ID               `json:"match_id,omitempty" yaml:"match_id,omitempty"`
}

// Matched reports whether the outcome carries a persisted match.
func (o Outcome) Matched() bool {
	return o.Status == OutcomeMatched
}

// Brand is the persisted brand row, keyed by exact name.
type Brand struct {
	ID                 ID
	SubsidiaryID       string
	Name               string
	Category           string
	CoreProductSummary string
	RecentIssues       string
	SalesStatus        SalesStatus
	SalesStatusNote    string
	LastUpdatedAt      time.Time
}

// SalesStatus is the pipeline stage a brand is in from the sales team's view.
type SalesStatus string

const (
	SalesStatusUncontacted SalesStatus = "미접촉"
	SalesStatusContacted   SalesStatus = "접촉 완료"
	SalesStatusProposed    SalesStatus = "제안서 발송"
	SalesStatusNegotiating SalesStatus = "협의 중"
	SalesStatusWon         SalesStatus = "진행 완료"
	SalesStatusLost        SalesStatus = "영업 실패"
	SalesStatusOnHold      SalesStatus = "보류"
)

// SalesStatuses lists the sales stages in pipeline order.
var SalesStatuses = []SalesStatus{
	SalesStatusUncontacted,
	SalesStatusContacted,
	SalesStatusProposed,
	SalesStatusNegotiating,
	SalesStatusWon,
	SalesStatusLost,
	SalesStatusOnHold,
}

// DefaultSalesStatus is assigned to brands on first sighting.
const DefaultSalesStatus = SalesStatusUncontacted

// Categories lists the product categories the extractor is run against.
var Categories = []string{
	"패션",
	"뷰티",
	"식음료",
	"전자제품",
	"인테리어",
	"건강",
	"레저",
	"이커머스",
	"금융",
}
