package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// The underlying client is created on first use and reused afterwards.
type Embedder struct {
	newClient func() (embeddings.EmbedderClient, error)
	maxRunes  int
	batchSize int

	once     sync.Once
	embedder embeddings.Embedder
	initErr  error

	logger *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	host, token, model := config.EmbeddingHost, config.Token, config.EmbeddingModel
	return newEmbedderWithClient(func() (embeddings.EmbedderClient, error) {
		return openai.New(
			openai.WithBaseURL(host),
			openai.WithToken(token),
			openai.WithEmbeddingModel(model),
		)
	}, config.MaxInputRunes), nil
}

func newEmbedderWithClient(newClient func() (embeddings.EmbedderClient, error), maxRunes int) *Embedder {
	return &Embedder{
		newClient: newClient,
		maxRunes:  maxRunes,
		batchSize: 64,
		logger:    slog.Default().With("component", "openai-embedder"),
	}
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// client builds the langchaingo embedder once. A failure is sticky so that
// every later call fails fast with the same error.
func (e *Embedder) client() (embeddings.Embedder, error) {
	e.once.Do(func() {
		c, err := e.newClient()
		if err != nil {
			e.initErr = fmt.Errorf("%w: create embedding client: %w", ai.ErrClientInit, err)
			return
		}
		e.embedder, err = embeddings.NewEmbedder(c,
			embeddings.WithStripNewLines(true),
			embeddings.WithBatchSize(e.batchSize),
		)
		if err != nil {
			e.initErr = fmt.Errorf("%w: %w", ai.ErrClientInit, err)
		}
	})
	return e.embedder, e.initErr
}

// EmbedQuery generates a vector embedding for a single query string.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	client, err := e.client()
	if err != nil {
		return nil, err
	}

	text = truncateRunes(text, e.maxRunes)
	e.logger.Debug("generating query embedding", "length", len(text))

	vector, err := client.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("failed to generate query embedding", "err", err)
		return nil, err
	}
	return vector, nil
}

// EmbedDocuments generates vector embeddings for multiple texts in a batch.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	client, err := e.client()
	if err != nil {
		return nil, err
	}

	e.logger.Debug("generating document embeddings", "count", len(texts))

	bounded := make([]string, len(texts))
	for i, text := range texts {
		bounded[i] = truncateRunes(text, e.maxRunes)
	}

	vectors, err := client.EmbedDocuments(ctx, bounded)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(vectors))
	}

	return vectors, nil
}
