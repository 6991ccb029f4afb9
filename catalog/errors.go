package catalog

import "errors"

var (
	// ErrStoreRequired is returned when a catalog store is not provided.
	ErrStoreRequired = errors.New("catalog store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidK is returned when a search asks for fewer than one result.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrDuplicateMediaID is returned when a dataset repeats a media_id.
	ErrDuplicateMediaID = errors.New("duplicate media_id")

	// ErrMissingColumn is returned when a dataset lacks a required header.
	ErrMissingColumn = errors.New("missing dataset column")

	// ErrInvalidBuildMode is returned for a build mode other than replace or append.
	ErrInvalidBuildMode = errors.New("invalid build mode")
)
