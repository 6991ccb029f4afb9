package extract

import "errors"

var (
	// ErrCorpusRequired is returned when no corpus provider is given.
	ErrCorpusRequired = errors.New("corpus provider required")

	// ErrGeneratorRequired is returned when no language model is given.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrNotAList is the parse failure cause when the model answered with
	// something other than a JSON array.
	ErrNotAList = errors.New("model output is not a list")

	// ErrNoJSON is the parse failure cause when no array could be found.
	ErrNoJSON = errors.New("no JSON array found in model output")
)
