package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/happy6team/ooh-marketing-sales/core"
)

const (
	// DefaultK is how many candidates are requested from the catalog.
	DefaultK = 10

	// DefaultCompany is the agency named in scripts and emails.
	DefaultCompany = "올이즈굿"
)

// Searcher returns catalog media ranked by distance to a query.
// *catalog.Index satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]core.ScoredMedia, error)
}

// Matcher picks a medium for a brand and generates the outreach material.
type Matcher struct {
	searcher  Searcher
	generator ai.Generator
	policy    RankPolicy
	k         int
	company   string
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger.With("component", "media-matcher")
		return nil
	}
}

// WithK sets how many candidates are requested from the catalog.
// Default is DefaultK.
func WithK(k int) Option {
	return func(m *Matcher) error {
		if k < 1 {
			return fmt.Errorf("k must be at least 1, got %d", k)
		}
		m.k = k
		return nil
	}
}

// WithRankPolicy replaces TopRank.
func WithRankPolicy(policy RankPolicy) Option {
	return func(m *Matcher) error {
		if policy == nil {
			return fmt.Errorf("rank policy cannot be nil")
		}
		m.policy = policy
		return nil
	}
}

// WithCompany sets the agency name used in generated material.
func WithCompany(name string) Option {
	return func(m *Matcher) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("company name cannot be empty")
		}
		m.company = name
		return nil
	}
}

// WithClock sets the time source for match timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		m.now = now
		return nil
	}
}

// NewMatcher creates a matcher over a catalog searcher and a language model.
func NewMatcher(searcher Searcher, generator ai.Generator, opts ...Option) (*Matcher, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	m := &Matcher{
		searcher:  searcher,
		generator: generator,
		policy:    TopRank,
		k:         DefaultK,
		company:   DefaultCompany,
		logger:    slog.Default().With("component", "media-matcher"),
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Match selects a medium for brand and generates the call script and
// proposal email signed by owner. Errors are not retried.
func (m *Matcher) Match(ctx context.Context, brand core.BrandIssueRecord, owner string) (*core.MatchResult, error) {
	if err := core.ValidateBrandIssue(&brand); err != nil {
		return nil, err
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}

	hits, err := m.searcher.Search(ctx, Query(brand), m.k)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog for %q: %w", brand.Name, err)
	}
	top, ok := m.policy(hits)
	if !ok {
		m.logger.Info("no media matched", "brand", brand.Name, "hits", len(hits))
		return nil, fmt.Errorf("%w: brand %q", ErrNoMatchingMedia, brand.Name)
	}
	media := &top.Media
	reason := Reason(media)

	script, err := m.generate(ctx, buildScriptPrompt(brand, media, reason, m.company, owner))
	if err != nil {
		return nil, fmt.Errorf("failed to generate call script for %q: %w", brand.Name, err)
	}

	reasonsOutput, err := m.generator.Generate(ctx, buildReasonsPrompt(brand, media))
	if err != nil {
		return nil, fmt.Errorf("failed to generate email reasons for %q: %w", brand.Name, err)
	}
	parsed := parseReasons(reasonsOutput)
	if len(parsed) < reasonCount {
		m.logger.Debug("filling email reasons from media fields", "brand", brand.Name, "parsed", len(parsed))
	}

	email := composeEmail(emailInput{
		company: m.company,
		owner:   owner,
		brand:   brand.Name,
		media:   media,
		reasons: completeReasons(parsed, brand.Name, media),
	})

	now := m.now()
	result := &core.MatchResult{
		MediaID:         media.MediaID,
		MediaName:       media.Name,
		MediaLocation:   media.Location,
		MediaType:       media.MediaType,
		MatchReason:     reason,
		SalesCallScript: script,
		ProposalEmail:   email,
		GeneratedAt:     now,
		LastUpdatedAt:   now,
		UsedInSales:     false,
	}
	if err := core.ValidateMatch(result); err != nil {
		return nil, err
	}

	m.logger.Info("matched brand", "brand", brand.Name, "media_id", media.MediaID,
		"media", media.Name, "distance", top.Distance)
	return result, nil
}

// generate runs the model and rejects blank answers.
func (m *Matcher) generate(ctx context.Context, prompt string) (string, error) {
	output, err := m.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	output = strings.TrimSpace(thinkTagPattern.ReplaceAllString(output, ""))
	if output == "" {
		return "", ErrEmptyGeneration
	}
	return output, nil
}
