package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GenerationHost)
	assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:7b", cfg.GenerationModel)
	assert.Equal(t, 2000, cfg.MaxInputRunes)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.GenerationHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithGenerationHost("http://generate:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://generate:9090/v1", cfg.GenerationHost)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithGenerationModel("gpt-4o"),
			WithToken("sk-test"),
			WithMaxInputRunes(512),
			WithTemperature(0.7),
			WithTimeout(15*time.Minute),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o", cfg.GenerationModel)
		assert.Equal(t, "sk-test", cfg.Token)
		assert.Equal(t, 512, cfg.MaxInputRunes)
		assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
		assert.Equal(t, 15*time.Minute, cfg.Timeout)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "adds suffix", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trims trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "keeps existing suffix", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
		{name: "leaves empty host", host: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host, GenerationHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.GenerationHost)
			assert.Equal(t, "none", cfg.Token)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "missing embedding host", mutate: func(c *Config) { c.EmbeddingHost = "" }, wantErr: "EmbeddingHost"},
		{name: "missing generation host", mutate: func(c *Config) { c.GenerationHost = "" }, wantErr: "GenerationHost"},
		{name: "missing embedding model", mutate: func(c *Config) { c.EmbeddingModel = "" }, wantErr: "EmbeddingModel"},
		{name: "missing generation model", mutate: func(c *Config) { c.GenerationModel = "" }, wantErr: "GenerationModel"},
		{name: "zero max input", mutate: func(c *Config) { c.MaxInputRunes = 0 }, wantErr: "MaxInputRunes"},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 3 }, wantErr: "Temperature"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("normalizes before validating", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}
