package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/storage"
)

// Extractor finds brands with recent activity. *extract.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, category, window string) ([]core.BrandIssueRecord, error)
}

// Matcher picks a medium for one brand. *match.Matcher satisfies it.
type Matcher interface {
	Match(ctx context.Context, brand core.BrandIssueRecord, owner string) (*core.MatchResult, error)
}

// RunRequest names what a run prospects and who signs the outreach.
type RunRequest struct {
	Category string
	Window   string // defaults to the current month, e.g. "2025년 5월"
	Owner    string
}

// RunResult is the table of one run: one outcome per extracted brand, in
// extraction order.
type RunResult struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Category   string         `json:"category" yaml:"category"`
	Window     string         `json:"window" yaml:"window"`
	Owner      string         `json:"owner" yaml:"owner"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Outcomes   []core.Outcome `json:"outcomes" yaml:"outcomes"`
}

// Matched counts matched outcomes.
func (r *RunResult) Matched() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Matched() {
			n++
		}
	}
	return n
}

// Skipped counts skipped outcomes.
func (r *RunResult) Skipped() int {
	return len(r.Outcomes) - r.Matched()
}

// Orchestrator sequences extraction, matching and persistence.
type Orchestrator struct {
	extractor Extractor
	processor *brandProcessor
	store     storage.SalesStore
	workers   int
	pool      *ants.Pool
	metrics   *Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "pipeline")
		return nil
	}
}

// WithWorkers sets how many brands are matched concurrently.
// Default is 1, which processes brands sequentially.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		o.workers = n
		return nil
	}
}

// WithMetrics records run metrics into m.
// Default is an unregistered Metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) error {
		if m == nil {
			return fmt.Errorf("metrics cannot be nil")
		}
		o.metrics = m
		return nil
	}
}

// WithClock sets the time source for run timestamps and the default window.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.now = now
		return nil
	}
}

// NewOrchestrator creates an orchestrator. Call Release when done.
func NewOrchestrator(extractor Extractor, matcher Matcher, store storage.SalesStore, opts ...Option) (*Orchestrator, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if matcher == nil {
		return nil, ErrMatcherRequired
	}
	if store == nil {
		return nil, ErrSalesStoreRequired
	}

	o := &Orchestrator{
		extractor: extractor,
		store:     store,
		workers:   1,
		logger:    slog.Default().With("component", "pipeline"),
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}

	if o.workers > 1 {
		pool, err := ants.NewPool(o.workers)
		if err != nil {
			return nil, fmt.Errorf("failed to create worker pool: %w", err)
		}
		o.pool = pool
	}

	o.processor = &brandProcessor{
		matcher: matcher,
		store:   store,
		metrics: o.metrics,
		logger:  o.logger,
	}
	return o, nil
}

// Run extracts brands for the request and matches and persists each one.
// Errors are an invalid request or a failed extraction; per-brand failures
// become skipped outcomes.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	req.Category = strings.TrimSpace(req.Category)
	req.Owner = strings.TrimSpace(req.Owner)
	req.Window = strings.TrimSpace(req.Window)
	if req.Category == "" {
		return nil, ErrCategoryRequired
	}
	if err := core.ValidateCategory(req.Category); err != nil {
		return nil, err
	}
	if req.Owner == "" {
		return nil, ErrOwnerRequired
	}

	started := o.now()
	if req.Window == "" {
		req.Window = CurrentWindow(started)
	}
	result := &RunResult{
		RunID:     uuid.NewString(),
		Category:  req.Category,
		Window:    req.Window,
		Owner:     req.Owner,
		StartedAt: started,
	}
	logger := o.logger.With("run_id", result.RunID)
	logger.Info("starting run", "category", req.Category, "window", req.Window, "workers", o.workers)

	extractStart := time.Now()
	brands, err := o.extractor.Extract(ctx, req.Category, req.Window)
	o.metrics.observeStage(StageExtract, extractStart)
	if err != nil {
		o.metrics.recordRun("failed")
		logger.Error("extraction failed", "err", err)
		return nil, fmt.Errorf("failed to extract brands: %w", err)
	}
	o.metrics.brandsExtracted.Add(float64(len(brands)))

	if o.pool == nil {
		result.Outcomes = o.runSequential(ctx, req, brands)
	} else {
		result.Outcomes = o.runConcurrent(ctx, req, brands)
	}

	result.FinishedAt = o.now()
	o.metrics.recordRun("completed")
	logger.Info("run finished", "brands", len(brands), "matched", result.Matched(), "skipped", result.Skipped())
	return result, nil
}

func (o *Orchestrator) runSequential(ctx context.Context, req RunRequest, brands []core.BrandIssueRecord) []core.Outcome {
	outcomes := make([]core.Outcome, len(brands))
	for i, brand := range brands {
		outcomes[i] = o.processor.process(ctx, req.Category, brand, req.Owner)
	}
	return outcomes
}

// runConcurrent writes each brand's outcome into its own slot so the
// result keeps extraction order.
func (o *Orchestrator) runConcurrent(ctx context.Context, req RunRequest, brands []core.BrandIssueRecord) []core.Outcome {
	outcomes := make([]core.Outcome, len(brands))
	var wg sync.WaitGroup
	for i, brand := range brands {
		wg.Add(1)
		err := o.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = o.processor.process(ctx, req.Category, brand, req.Owner)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = o.processor.skip(brand, "schedule", err)
		}
	}
	wg.Wait()
	return outcomes
}

// BrandRequest names one brand for MatchBrand. Issue and Description may be
// left blank for a brand already on record.
type BrandRequest struct {
	Name        string
	Issue       string
	Description string
	Category    string
	Owner       string
}

// MatchBrand matches and persists a single brand without running
// extraction. Failures are returned rather than recorded as skipped.
func (o *Orchestrator) MatchBrand(ctx context.Context, req BrandRequest) (*core.Outcome, error) {
	brand := core.BrandIssueRecord{
		Name:        strings.TrimSpace(req.Name),
		Issue:       strings.TrimSpace(req.Issue),
		Description: strings.TrimSpace(req.Description),
	}
	if brand.Name == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidBrandIssue, core.ErrEmptyBrandName)
	}
	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	category := strings.TrimSpace(req.Category)

	if brand.Issue == "" || brand.Description == "" || category == "" {
		stored, err := o.store.FindBrand(ctx, brand.Name)
		switch {
		case err == nil:
			if brand.Issue == "" {
				brand.Issue = stored.RecentIssues
			}
			if brand.Description == "" {
				brand.Description = stored.CoreProductSummary
			}
			if category == "" {
				category = stored.Category
			}
		case !isNotFound(err):
			return nil, fmt.Errorf("failed to look up brand %q: %w", brand.Name, err)
		}
	}
	if brand.Issue == "" {
		return nil, fmt.Errorf("%w: %q", ErrIssueRequired, brand.Name)
	}

	outcome, err := o.processor.matchAndSave(ctx, category, brand, owner)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// CurrentWindow formats t as the month-level time window used in searches.
func CurrentWindow(t time.Time) string {
	return fmt.Sprintf("%d년 %d월", t.Year(), int(t.Month()))
}
