package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateBrandIssue checks that a brand issue record has a name and an issue.
func ValidateBrandIssue(record *BrandIssueRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidBrandIssue)
	}

	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBrandIssue, ErrEmptyBrandName)
	}

	if strings.TrimSpace(record.Issue) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBrandIssue, ErrEmptyIssue)
	}

	return nil
}

// ValidateMedia checks a catalog row against its struct tags.
func ValidateMedia(record *MediaRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMedia)
	}

	if err := structValidator().Struct(record); err != nil {
		return fmt.Errorf("%w: media_id %d: %w", ErrInvalidMedia, record.MediaID, err)
	}

	return nil
}

// ValidateMatch checks that a match carries a media reference and non-empty
// generated text.
func ValidateMatch(match *MatchResult) error {
	if match == nil {
		return fmt.Errorf("%w: match is nil", ErrInvalidMatch)
	}
	if match.MediaID <= 0 {
		return fmt.Errorf("%w: media_id is required", ErrInvalidMatch)
	}
	if strings.TrimSpace(match.MatchReason) == "" {
		return fmt.Errorf("%w: match_reason is empty", ErrInvalidMatch)
	}
	if strings.TrimSpace(match.SalesCallScript) == "" {
		return fmt.Errorf("%w: sales_call_script is empty", ErrInvalidMatch)
	}
	if strings.TrimSpace(match.ProposalEmail) == "" {
		return fmt.Errorf("%w: proposal_email is empty", ErrInvalidMatch)
	}
	return nil
}

// ValidateSalesStatus rejects statuses outside the sales pipeline stages.
func ValidateSalesStatus(status SalesStatus) error {
	if !slices.Contains(SalesStatuses, status) {
		return fmt.Errorf("%w: %q", ErrInvalidSalesStatus, status)
	}
	return nil
}

// ValidateCategory rejects categories not listed in Categories.
func ValidateCategory(category string) error {
	if !slices.Contains(Categories, category) {
		return fmt.Errorf("%w: %q (one of %s)", ErrInvalidCategory, category, strings.Join(Categories, ", "))
	}
	return nil
}
