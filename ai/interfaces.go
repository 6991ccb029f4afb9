package ai

import "context"

// Embedder converts free text into fixed-length vectors.
// Document and query vectors share one space so they can be compared.
// Implementations must be deterministic for identical input and safe for concurrent use.
type Embedder interface {
	// EmbedDocuments embeds many texts in one call.
	// The returned slice is in the same order as texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator is a prompt-in, text-out language model.
// Callers must not assume the output follows any structure the prompt asks for.
type Generator interface {
	// Generate returns the model's completion for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
