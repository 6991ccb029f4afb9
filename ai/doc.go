// Package ai defines the AI services the matching pipeline depends on.
//
// Two services are used:
//
//   - Embedder: turns media descriptions and brand queries into vectors
//   - Generator: completes prompts for issue extraction, call scripts and emails
//
// AIProvider bundles both for lifecycle management.
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible endpoints through langchaingo
//   - ai/mock: deterministic test doubles
//
// Public constructors in ai/openai return interfaces. Mock constructors
// return concrete types so tests can inspect call counts and swap behavior.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedQuery(ctx, "성수 팝업스토어 / 스트리트 캐주얼")
//	text, err := provider.Generator().Generate(ctx, prompt)
package ai
