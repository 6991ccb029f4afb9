package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/happy6team/ooh-marketing-sales/core"
)

// DefaultMaxBrands caps how many brands one extraction returns.
const DefaultMaxBrands = 10

// Extractor turns a corpus of web text into brand issue records using a
// language model, then checks the model's answer against the corpus.
type Extractor struct {
	corpus     CorpusProvider
	generator  ai.Generator
	nameFilter NameFilter
	maxBrands  int
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "issue-extractor")
		return nil
	}
}

// WithNameFilter replaces DefaultNameFilter.
func WithNameFilter(filter NameFilter) Option {
	return func(e *Extractor) error {
		if filter == nil {
			return fmt.Errorf("name filter cannot be nil")
		}
		e.nameFilter = filter
		return nil
	}
}

// WithMaxBrands sets the cap on returned records.
func WithMaxBrands(n int) Option {
	return func(e *Extractor) error {
		if n < 1 {
			return fmt.Errorf("max brands must be positive, got %d", n)
		}
		e.maxBrands = n
		return nil
	}
}

// NewExtractor creates an extractor.
func NewExtractor(corpus CorpusProvider, generator ai.Generator, opts ...Option) (*Extractor, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	e := &Extractor{
		corpus:     corpus,
		generator:  generator,
		nameFilter: DefaultNameFilter,
		maxBrands:  DefaultMaxBrands,
		logger:     slog.Default().With("component", "issue-extractor"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Extract returns at most maxBrands records for the category and time
// window, in the model's order. Unparseable model output yields an empty
// list; only corpus and model failures are errors.
func (e *Extractor) Extract(ctx context.Context, category, window string) ([]core.BrandIssueRecord, error) {
	corpus, err := e.corpus.Gather(ctx, category, window)
	if err != nil {
		return nil, fmt.Errorf("failed to gather corpus: %w", err)
	}
	if strings.TrimSpace(corpus) == "" {
		e.logger.Info("corpus is empty, nothing to extract", "category", category, "window", window)
		return []core.BrandIssueRecord{}, nil
	}

	prompt := buildExtractionPrompt(category, window, e.maxBrands, corpus)
	output, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to run extraction model: %w", err)
	}

	result := Parse(output)
	if !result.OK() {
		e.logger.Warn("could not parse extraction output", "category", category, "err", result.Err, "raw", result.Raw)
		return []core.BrandIssueRecord{}, nil
	}

	records := e.validate(result.Records, newEvidence(corpus))
	e.logger.Info("extracted brands", "category", category, "window", window,
		"candidates", len(result.Records), "kept", len(records))
	return records, nil
}

// validate filters names, enforces date evidence, drops duplicate names
// and applies the cap.
func (e *Extractor) validate(candidates []core.BrandIssueRecord, ev evidence) []core.BrandIssueRecord {
	records := make([]core.BrandIssueRecord, 0, min(len(candidates), e.maxBrands))
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if len(records) == e.maxBrands {
			break
		}

		name := strings.TrimSpace(c.Name)
		if !e.nameFilter(name) {
			e.logger.Debug("rejected name", "name", c.Name)
			continue
		}
		issue := strings.TrimSpace(c.Issue)
		if issue == "" {
			e.logger.Debug("rejected record without issue", "name", name)
			continue
		}

		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			e.logger.Debug("dropped duplicate brand", "name", name)
			continue
		}
		seen[key] = struct{}{}

		checked := enforceDateEvidence(issue, ev)
		if checked != issue {
			e.logger.Debug("replaced untraceable date", "name", name, "issue", issue)
		}

		records = append(records, core.BrandIssueRecord{
			Name:        name,
			Issue:       checked,
			Description: strings.TrimSpace(c.Description),
		})
	}
	return records
}
