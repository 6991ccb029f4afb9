// Package config loads application settings from an optional YAML file,
// environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/happy6team/ooh-marketing-sales/ai"
)

// DefaultEnvFile is loaded when no env file is named and it exists.
const DefaultEnvFile = ".env"

// Config holds all application configuration.
// Environment variables override YAML values. The API token only comes
// from the environment.
type Config struct {
	AI       AIConfig       `yaml:"ai"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// AIConfig configures the embedding and generation endpoints.
type AIConfig struct {
	EmbeddingHost   string        `yaml:"embedding_host" env:"OOH_EMBEDDING_HOST" env-default:"http://localhost:11434/v1" validate:"required,url"`
	GenerationHost  string        `yaml:"generation_host" env:"OOH_GENERATION_HOST" env-default:"http://localhost:11434/v1" validate:"required,url"`
	EmbeddingModel  string        `yaml:"embedding_model" env:"OOH_EMBEDDING_MODEL" env-default:"all-minilm" validate:"required"`
	GenerationModel string        `yaml:"generation_model" env:"OOH_GENERATION_MODEL" env-default:"qwen2.5:7b" validate:"required"`
	Token           string        `yaml:"-" env:"OPENAI_API_KEY"`
	MaxInputRunes   int           `yaml:"max_input_runes" env:"OOH_MAX_INPUT_RUNES" env-default:"2000" validate:"gte=1"`
	Temperature     float64       `yaml:"temperature" env:"OOH_TEMPERATURE" env-default:"0.2" validate:"gte=0,lte=2"`
	Timeout         time.Duration `yaml:"timeout" env:"OOH_AI_TIMEOUT" env-default:"2m" validate:"gte=0s"`
}

// CatalogConfig configures the media catalog index.
type CatalogConfig struct {
	Path        string        `yaml:"path" env:"OOH_CATALOG_PATH" env-default:"./data/catalog"`
	InMemory    bool          `yaml:"in_memory" env:"OOH_CATALOG_IN_MEMORY" env-default:"false"`
	Collection  string        `yaml:"collection" env:"OOH_CATALOG_COLLECTION" env-default:"media" validate:"required"`
	Dataset     string        `yaml:"dataset" env:"OOH_CATALOG_DATASET"`
	Sheet       string        `yaml:"sheet" env:"OOH_CATALOG_SHEET"`
	BuildMode   string        `yaml:"build_mode" env:"OOH_CATALOG_BUILD_MODE" env-default:"replace" validate:"oneof=replace append"`
	BatchSize   int           `yaml:"batch_size" env:"OOH_CATALOG_BATCH_SIZE" env-default:"32" validate:"gte=1"`
	Parallelism int           `yaml:"parallelism" env:"OOH_CATALOG_PARALLELISM" env-default:"4" validate:"gte=1"`
	MaxAttempts int           `yaml:"max_attempts" env:"OOH_CATALOG_MAX_ATTEMPTS" env-default:"3" validate:"gte=1"`
	RetryDelay  time.Duration `yaml:"retry_delay" env:"OOH_CATALOG_RETRY_DELAY" env-default:"500ms" validate:"gte=0s"`
}

// DatabaseConfig selects the relational store.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"OOH_DB_DRIVER" env-default:"sqlite" validate:"oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" env:"OOH_DB_DSN" env-default:"./data/sales.db" validate:"required"`
	Debug  bool   `yaml:"debug" env:"OOH_DB_DEBUG" env-default:"false"`
}

// PipelineConfig configures runs and generated material.
type PipelineConfig struct {
	Workers       int    `yaml:"workers" env:"OOH_PIPELINE_WORKERS" env-default:"1" validate:"gte=1"`
	K             int    `yaml:"k" env:"OOH_PIPELINE_K" env-default:"10" validate:"gte=1"`
	MaxBrands     int    `yaml:"max_brands" env:"OOH_PIPELINE_MAX_BRANDS" env-default:"10" validate:"gte=1"`
	Owner         string `yaml:"owner" env:"OOH_PIPELINE_OWNER"`
	Company       string `yaml:"company" env:"OOH_PIPELINE_COMPANY" env-default:"올이즈굿" validate:"required"`
	SearchResults int    `yaml:"search_results" env:"OOH_SEARCH_RESULTS" env-default:"5" validate:"gte=1"`
	OutputDir     string `yaml:"output_dir" env:"OOH_OUTPUT_DIR" env-default:"."`
}

// Load reads configuration. envFile, when set, must exist; otherwise
// DefaultEnvFile is loaded if present. Variables already in the
// environment win over the env file. path, when set, names a YAML file.
func Load(path, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	}
	err := godotenv.Load(DefaultEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
	}
	return nil
}

// Validate checks every section against its constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ProviderConfig converts the section to the provider configuration.
func (c AIConfig) ProviderConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.EmbeddingHost),
		ai.WithGenerationHost(c.GenerationHost),
		ai.WithEmbeddingModel(c.EmbeddingModel),
		ai.WithGenerationModel(c.GenerationModel),
		ai.WithToken(c.Token),
		ai.WithMaxInputRunes(c.MaxInputRunes),
		ai.WithTemperature(c.Temperature),
		ai.WithTimeout(c.Timeout),
	)
}
