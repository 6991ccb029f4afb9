package pipeline

import "errors"

var (
	// ErrExtractorRequired is returned when no issue extractor is provided.
	ErrExtractorRequired = errors.New("issue extractor required")

	// ErrMatcherRequired is returned when no media matcher is provided.
	ErrMatcherRequired = errors.New("media matcher required")

	// ErrSalesStoreRequired is returned when no sales store is provided.
	ErrSalesStoreRequired = errors.New("sales store required")

	// ErrCategoryRequired is returned when a run names no category.
	ErrCategoryRequired = errors.New("category required")

	// ErrOwnerRequired is returned when a run names no sales owner.
	ErrOwnerRequired = errors.New("owner required")

	// ErrIssueRequired is returned by MatchBrand when no issue is given and
	// the brand has none on record.
	ErrIssueRequired = errors.New("issue required for unknown brand")
)
