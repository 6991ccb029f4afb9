// Package oohsales wires the catalog, extractor, matcher and sales store
// into one service for the command line.
package oohsales

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/happy6team/ooh-marketing-sales/ai/openai"
	"github.com/happy6team/ooh-marketing-sales/catalog"
	"github.com/happy6team/ooh-marketing-sales/config"
	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/extract"
	"github.com/happy6team/ooh-marketing-sales/logging"
	"github.com/happy6team/ooh-marketing-sales/match"
	"github.com/happy6team/ooh-marketing-sales/pipeline"
	"github.com/happy6team/ooh-marketing-sales/storage"
	"github.com/happy6team/ooh-marketing-sales/storage/badger"
	sqlstore "github.com/happy6team/ooh-marketing-sales/storage/sql"
)

// Service owns the stores and the AI provider for one process.
type Service struct {
	cfg          *config.Config
	catalogStore storage.CatalogStore
	salesStore   storage.SalesStore
	provider     ai.AIProvider
	corpus       extract.CorpusProvider
	progress     io.Writer
	metrics      *pipeline.Metrics
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	provider   ai.AIProvider
	corpus     extract.CorpusProvider
	progress   io.Writer
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// WithProvider replaces the OpenAI-compatible provider built from config.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithCorpus replaces web search as the extraction corpus.
func WithCorpus(corpus extract.CorpusProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.corpus = corpus
	}
}

// WithProgress reports catalog build progress to w.
func WithProgress(w io.Writer) ServiceOption {
	return func(o *serviceOptions) {
		o.progress = w
	}
}

// WithRegisterer registers pipeline metrics with reg.
func WithRegisterer(reg prometheus.Registerer) ServiceOption {
	return func(o *serviceOptions) {
		o.registerer = reg
	}
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService opens the catalog and sales stores named by cfg.
func NewService(ctx context.Context, cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	catalogStore, err := badger.NewCatalogStore(cfg.Catalog.Path, cfg.Catalog.InMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}

	salesStore, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.Database.Debug,
	}, sqlstore.WithLogger(logger))
	if err != nil {
		catalogStore.Close()
		return nil, fmt.Errorf("failed to open sales store: %w", err)
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(cfg.AI.ProviderConfig())
		if err != nil {
			salesStore.Close()
			catalogStore.Close()
			return nil, fmt.Errorf("failed to create AI provider: %w", err)
		}
	}

	logger.Debug("service opened", "catalog", cfg.Catalog.Path, "in_memory", cfg.Catalog.InMemory,
		"driver", cfg.Database.Driver, "dsn", logging.SanitizeDSN(cfg.Database.DSN))

	return &Service{
		cfg:          cfg,
		catalogStore: catalogStore,
		salesStore:   salesStore,
		provider:     provider,
		corpus:       options.corpus,
		progress:     options.progress,
		metrics:      pipeline.NewMetrics(options.registerer),
		logger:       logger,
	}, nil
}

// Close releases the provider and both stores.
func (s *Service) Close() error {
	var errs []error
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if err := s.salesStore.Close(); err != nil {
		s.logger.Error("error closing sales store", "err", err)
		errs = append(errs, err)
	}
	if err := s.catalogStore.Close(); err != nil {
		s.logger.Error("error closing catalog store", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SalesStore returns the relational store.
func (s *Service) SalesStore() storage.SalesStore {
	return s.salesStore
}

// Catalog returns the media index configured from the catalog section.
func (s *Service) Catalog() (*catalog.Index, error) {
	c := s.cfg.Catalog
	opts := []catalog.Option{
		catalog.WithLogger(s.logger),
		catalog.WithCollection(c.Collection),
		catalog.WithBatchSize(c.BatchSize),
		catalog.WithParallelism(c.Parallelism),
		catalog.WithRetry(c.MaxAttempts, c.RetryDelay),
	}
	if s.progress != nil {
		opts = append(opts, catalog.WithProgress(s.progress))
	}
	return catalog.NewIndex(s.catalogStore, s.provider.Embedder(), opts...)
}

// BuildCatalog loads the dataset at path and indexes it.
func (s *Service) BuildCatalog(ctx context.Context, path string, mode catalog.BuildMode) (*storage.Manifest, error) {
	records, err := catalog.LoadFile(path, s.cfg.Catalog.Sheet)
	if err != nil {
		return nil, err
	}
	index, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return index.Build(ctx, records, mode)
}

// Search returns the k closest media to query.
func (s *Service) Search(ctx context.Context, query string, k int) ([]core.ScoredMedia, error) {
	index, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return index.Search(ctx, query, k)
}

// Matcher returns a media matcher over the catalog.
func (s *Service) Matcher() (*match.Matcher, error) {
	index, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return match.NewMatcher(index, s.provider.Generator(),
		match.WithLogger(s.logger),
		match.WithK(s.cfg.Pipeline.K),
		match.WithCompany(s.cfg.Pipeline.Company),
	)
}

// Extractor returns an issue extractor over the configured corpus, or web
// search when none was given.
func (s *Service) Extractor() (*extract.Extractor, error) {
	corpus := s.corpus
	if corpus == nil {
		search, err := extract.NewSearchCorpus(s.cfg.Pipeline.SearchResults, s.logger)
		if err != nil {
			return nil, err
		}
		corpus = search
	}
	return extract.NewExtractor(corpus, s.provider.Generator(),
		extract.WithLogger(s.logger),
		extract.WithMaxBrands(s.cfg.Pipeline.MaxBrands),
	)
}

// Orchestrator returns a pipeline over this service's components.
// The caller must Release it.
func (s *Service) Orchestrator() (*pipeline.Orchestrator, error) {
	extractor, err := s.Extractor()
	if err != nil {
		return nil, err
	}
	matcher, err := s.Matcher()
	if err != nil {
		return nil, err
	}
	return pipeline.NewOrchestrator(extractor, matcher, s.salesStore,
		pipeline.WithLogger(s.logger),
		pipeline.WithWorkers(s.cfg.Pipeline.Workers),
		pipeline.WithMetrics(s.metrics),
	)
}

// Run executes one pipeline run.
func (s *Service) Run(ctx context.Context, req pipeline.RunRequest) (*pipeline.RunResult, error) {
	orchestrator, err := s.Orchestrator()
	if err != nil {
		return nil, err
	}
	defer orchestrator.Release()
	return orchestrator.Run(ctx, req)
}

// MatchBrand matches and persists one brand without extraction.
func (s *Service) MatchBrand(ctx context.Context, req pipeline.BrandRequest) (*core.Outcome, error) {
	orchestrator, err := s.Orchestrator()
	if err != nil {
		return nil, err
	}
	defer orchestrator.Release()
	return orchestrator.MatchBrand(ctx, req)
}
