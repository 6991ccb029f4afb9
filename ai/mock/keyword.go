package mock

import (
	"context"
	"strings"
)

// NewKeywordEmbedder returns an embedder whose vectors count occurrences of
// each vocabulary term, plus one constant dimension so no vector is zero.
// Texts sharing more terms end up closer, which makes ranking tests readable.
func NewKeywordEmbedder(vocabulary ...string) *MockEmbedder {
	embed := func(text string) []float32 {
		vector := make([]float32, len(vocabulary)+1)
		for i, term := range vocabulary {
			vector[i] = float32(strings.Count(text, term))
		}
		vector[len(vocabulary)] = 0.1
		return vector
	}

	return &MockEmbedder{
		EmbedQueryFunc: func(_ context.Context, text string) ([]float32, error) {
			return embed(text), nil
		},
		EmbedDocumentsFunc: func(_ context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i, text := range texts {
				vectors[i] = embed(text)
			}
			return vectors, nil
		},
	}
}
