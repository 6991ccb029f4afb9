package catalog

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/storage"
	"golang.org/x/crypto/blake2b"
)

// BuildMode selects what happens to existing entries when the index is built.
type BuildMode string

const (
	// BuildReplace clears the collection before writing.
	BuildReplace BuildMode = "replace"
	// BuildAppend upserts by media_id and keeps other entries.
	BuildAppend BuildMode = "append"
)

// ParseBuildMode converts a config or flag value to a BuildMode.
// Empty means BuildReplace.
func ParseBuildMode(s string) (BuildMode, error) {
	switch BuildMode(s) {
	case "", BuildReplace:
		return BuildReplace, nil
	case BuildAppend:
		return BuildAppend, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBuildMode, s)
}

const (
	DefaultCollection  = "media"
	DefaultBatchSize   = 32
	DefaultParallelism = 4
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 500 * time.Millisecond
)

// Index embeds the media catalog and answers similarity queries against it.
type Index struct {
	store      storage.CatalogStore
	embedder   ai.Embedder
	collection string
	batches    batchEmbedder
	progress   io.Writer
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger.With("component", "media-catalog")
		return nil
	}
}

// WithCollection sets the collection name. Default is "media".
func WithCollection(name string) Option {
	return func(ix *Index) error {
		if name == "" {
			return fmt.Errorf("collection name cannot be empty")
		}
		ix.collection = name
		return nil
	}
}

// WithBatchSize sets how many records go into one embedding call.
func WithBatchSize(size int) Option {
	return func(ix *Index) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		ix.batches.batchSize = size
		return nil
	}
}

// WithParallelism sets how many embedding batches may run at once.
func WithParallelism(n int) Option {
	return func(ix *Index) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be positive, got %d", n)
		}
		ix.batches.parallelism = n
		return nil
	}
}

// WithRetry sets the attempts per batch and the first backoff delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(ix *Index) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		ix.batches.maxAttempts = maxAttempts
		ix.batches.retryDelay = baseDelay
		return nil
	}
}

// WithProgress writes build progress to w.
func WithProgress(w io.Writer) Option {
	return func(ix *Index) error {
		ix.progress = w
		return nil
	}
}

// WithClock sets the time source for manifests.
func WithClock(now func() time.Time) Option {
	return func(ix *Index) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		ix.now = now
		return nil
	}
}

// NewIndex creates an index over a catalog store.
func NewIndex(store storage.CatalogStore, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	ix := &Index{
		store:      store,
		embedder:   embedder,
		collection: DefaultCollection,
		batches: batchEmbedder{
			embedder:    embedder,
			batchSize:   DefaultBatchSize,
			parallelism: DefaultParallelism,
			maxAttempts: DefaultMaxAttempts,
			retryDelay:  DefaultRetryDelay,
		},
		now:    time.Now,
		logger: slog.Default().With("component", "media-catalog"),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}
	ix.batches.logger = ix.logger
	return ix, nil
}

// Collection returns the collection this index reads and writes.
func (ix *Index) Collection() string {
	return ix.collection
}

// Build embeds records and persists them under the collection.
// Any embedding failure aborts the build and leaves the stored collection untouched.
func (ix *Index) Build(ctx context.Context, records []core.MediaRecord, mode BuildMode) (*storage.Manifest, error) {
	if mode != BuildReplace && mode != BuildAppend {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBuildMode, mode)
	}

	seen := make(map[int64]struct{}, len(records))
	texts := make([]string, len(records))
	for i := range records {
		if err := core.ValidateMedia(&records[i]); err != nil {
			return nil, err
		}
		if _, dup := seen[records[i].MediaID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateMediaID, records[i].MediaID)
		}
		seen[records[i].MediaID] = struct{}{}
		texts[i] = CompositeText(&records[i])
	}

	ix.logger.Info("building catalog index", "collection", ix.collection, "mode", mode, "records", len(records))

	var progress *ProgressTracker
	if ix.progress != nil {
		progress = NewProgressTracker(ix.progress, len(records))
	}
	vectors, err := ix.batches.embed(ctx, texts, progress)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	entries := make([]storage.CatalogEntry, len(records))
	for i := range records {
		entries[i] = storage.CatalogEntry{
			Media:  records[i],
			Text:   texts[i],
			Vector: vectors[i],
		}
	}

	manifest := storage.Manifest{
		Collection: ix.collection,
		Mode:       string(mode),
		Count:      len(entries),
		Digest:     digest(entries),
		BuiltAt:    ix.now().UTC(),
	}

	switch mode {
	case BuildReplace:
		err = ix.store.ReplaceCollection(ctx, ix.collection, entries, manifest)
	case BuildAppend:
		err = ix.store.PutEntries(ctx, ix.collection, entries, manifest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}

	ix.logger.Info("catalog index built", "collection", ix.collection, "records", len(entries), "digest", manifest.Digest)
	return &manifest, nil
}

// Search returns up to k media ordered by ascending cosine distance to query.
// An empty or unbuilt collection yields an empty slice.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]core.ScoredMedia, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	vector, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		ix.logger.Error("error generating embedding for query", "err", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := ix.store.Nearest(ctx, ix.collection, NormalizeVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	ix.logger.Debug("catalog search", "k", k, "hits", len(hits))
	return hits, nil
}

// Count returns the number of media in the collection.
func (ix *Index) Count(ctx context.Context) (int, error) {
	return ix.store.Count(ctx, ix.collection)
}

// Manifest returns the last build's manifest, or nil if never built.
func (ix *Index) Manifest(ctx context.Context) (*storage.Manifest, error) {
	return ix.store.Manifest(ctx, ix.collection)
}

// digest fingerprints the (media_id, composite text) pairs of a build.
func digest(entries []storage.CatalogEntry) string {
	h, _ := blake2b.New256(nil)
	for i := range entries {
		h.Write([]byte(strconv.FormatInt(entries[i].Media.MediaID, 10)))
		h.Write([]byte{0})
		h.Write([]byte(entries[i].Text))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
