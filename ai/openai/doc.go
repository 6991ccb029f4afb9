// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// The package implements ai.AIProvider on top of langchaingo, so it works
// against OpenAI itself or local servers such as Ollama, LocalAI or vLLM.
//
// # Usage
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"), // /v1 added automatically
//	    ai.WithEmbeddingModel("all-minilm"),
//	    ai.WithGenerationModel("qwen2.5:7b"),
//	)
//
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedDocuments(ctx, texts)
//	script, err := provider.Generator().Generate(ctx, prompt)
package openai
