package ai

import "errors"

var (
	// ErrClientInit indicates a provider client could not be built.
	// Retrying the same call cannot succeed.
	ErrClientInit = errors.New("ai client initialization failed")
)
