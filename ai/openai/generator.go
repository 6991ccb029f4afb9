package openai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/happy6team/ooh-marketing-sales/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyResponse is returned when the model answers with no choices.
var ErrEmptyResponse = errors.New("empty response from model")

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client      llms.Model
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.GenerationHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.GenerationModel),
	)
	if err != nil {
		return nil, err
	}

	return newGeneratorWithModel(client, config.Temperature, config.Timeout), nil
}

func newGeneratorWithModel(client llms.Model, temperature float64, timeout time.Duration) *Generator {
	return &Generator{
		client:      client,
		temperature: temperature,
		timeout:     timeout,
		logger:      slog.Default().With("component", "openai-generator"),
	}
}

// NewGenerator creates a new text generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate sends prompt as a single user message and returns the first choice.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	start := time.Now()
	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("generation failed", "err", err)
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("generation complete", "elapsed", time.Since(start), "length", len(response.Choices[0].Content))
	return response.Choices[0].Content, nil
}
