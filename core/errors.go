package core

import "errors"

var (
	// ErrInvalidBrandIssue indicates a BrandIssueRecord failed validation.
	ErrInvalidBrandIssue = errors.New("invalid brand issue record")

	// ErrInvalidMedia indicates a MediaRecord failed validation.
	ErrInvalidMedia = errors.New("invalid media record")

	// ErrInvalidMatch indicates a MatchResult failed validation.
	ErrInvalidMatch = errors.New("invalid match result")

	// ErrEmptyBrandName indicates the brand Name field is empty.
	ErrEmptyBrandName = errors.New("brand name cannot be empty")

	// ErrEmptyIssue indicates the Issue field is empty.
	ErrEmptyIssue = errors.New("issue cannot be empty")

	// ErrInvalidSalesStatus indicates an unknown SalesStatus value.
	ErrInvalidSalesStatus = errors.New("invalid sales status")

	// ErrInvalidCategory indicates a category outside Categories.
	ErrInvalidCategory = errors.New("invalid category")
)
