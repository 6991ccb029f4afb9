package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"golang.org/x/sync/errgroup"
)

// batchEmbedder embeds texts in fixed-size batches with a bounded number
// of batches in flight. Each batch is retried with backoff.
type batchEmbedder struct {
	embedder    ai.Embedder
	batchSize   int
	parallelism int
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// embed returns one normalized vector per text, in input order.
// The first batch that fails after all retries cancels the rest.
func (b *batchEmbedder) embed(ctx context.Context, texts []string, progress *ProgressTracker) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	if len(texts) == 0 {
		return vectors, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)

	for start := 0; start < len(texts); start += b.batchSize {
		end := min(start+b.batchSize, len(texts))
		g.Go(func() error {
			batch := texts[start:end]

			var embedded [][]float32
			err := RetryWithBackoff(gctx, b.logger, b.maxAttempts, b.retryDelay, func() error {
				var err error
				embedded, err = b.embedder.EmbedDocuments(gctx, batch)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to embed records %d-%d: %w", start, end-1, err)
			}
			if len(embedded) != len(batch) {
				return fmt.Errorf("embedding count mismatch for records %d-%d: expected %d, got %d",
					start, end-1, len(batch), len(embedded))
			}

			for i, vector := range embedded {
				vectors[start+i] = NormalizeVector(vector)
			}
			if progress != nil {
				progress.BatchDone(len(batch))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
