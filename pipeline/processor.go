package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/storage"
)

// brandProcessor runs the match and persist stages for one brand.
type brandProcessor struct {
	matcher Matcher
	store   storage.SalesStore
	metrics *Metrics
	logger  *slog.Logger
}

// stageError tags an error with the stage that produced it.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// process never fails; errors become a skipped outcome.
func (p *brandProcessor) process(ctx context.Context, category string, brand core.BrandIssueRecord, owner string) core.Outcome {
	if err := ctx.Err(); err != nil {
		return p.skip(brand, "cancelled", err)
	}

	outcome, err := p.matchAndSave(ctx, category, brand, owner)
	if err != nil {
		var se *stageError
		if errors.As(err, &se) {
			return p.skip(brand, se.stage, se.err)
		}
		return p.skip(brand, "process", err)
	}
	return *outcome
}

func (p *brandProcessor) matchAndSave(ctx context.Context, category string, brand core.BrandIssueRecord, owner string) (*core.Outcome, error) {
	matchStart := time.Now()
	match, err := p.matcher.Match(ctx, brand, owner)
	p.metrics.observeStage(StageMatch, matchStart)
	if err != nil {
		return nil, &stageError{stage: StageMatch, err: err}
	}

	persistStart := time.Now()
	saved, err := p.store.SaveMatch(ctx, brand, category, match)
	p.metrics.observeStage(StagePersist, persistStart)
	if err != nil {
		return nil, &stageError{stage: StagePersist, err: err}
	}

	p.metrics.recordOutcome(core.OutcomeMatched)
	p.logger.Info("brand matched", "brand", brand.Name, "media_id", saved.Match.MediaID,
		"brand_id", saved.BrandID, "match_id", saved.MatchID, "new_match", saved.MatchCreated)

	persisted := saved.Match
	return &core.Outcome{
		Brand:   brand,
		Status:  core.OutcomeMatched,
		Match:   &persisted,
		BrandID: saved.BrandID,
		MatchID: saved.MatchID,
	}, nil
}

func (p *brandProcessor) skip(brand core.BrandIssueRecord, stage string, err error) core.Outcome {
	p.metrics.recordOutcome(core.OutcomeSkipped)
	p.logger.Warn("brand skipped", "brand", brand.Name, "stage", stage, "err", err)
	return core.Outcome{
		Brand:  brand,
		Status: core.OutcomeSkipped,
		Reason: fmt.Sprintf("%s: %v", stage, err),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
