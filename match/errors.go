package match

import "errors"

var (
	// ErrSearcherRequired is returned when no catalog searcher is given.
	ErrSearcherRequired = errors.New("catalog searcher required")

	// ErrGeneratorRequired is returned when no language model is given.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrNoMatchingMedia is returned when the catalog has no media for a brand.
	ErrNoMatchingMedia = errors.New("no matching media")

	// ErrEmptyGeneration is returned when the model answers with blank text.
	ErrEmptyGeneration = errors.New("model returned empty text")

	// ErrOwnerRequired is returned when no sales owner is named.
	ErrOwnerRequired = errors.New("owner name required")
)
