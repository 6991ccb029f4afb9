// Package mock provides test double implementations of AI service interfaces.
//
// The mocks let tests run without external AI services and with
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{1, 0, 0}, nil
//	}
//
//	generator := mock.NewMockGenerator("1. 타겟 일치\n2. 유동인구\n3. 유사 사례")
//	provider := mock.NewMockProviderWithServices(embedder, generator)
//
// # Default Behavior
//
//   - MockEmbedder: unit vectors derived from an FNV hash of the text
//   - MockGenerator: returns a fixed response and records prompts
package mock
