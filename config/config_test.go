package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// unsetForTest clears key for the test and restores it afterwards.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", cfg.AI.EmbeddingHost)
	assert.Equal(t, 2000, cfg.AI.MaxInputRunes)
	assert.Equal(t, 2*time.Minute, cfg.AI.Timeout)
	assert.Equal(t, "media", cfg.Catalog.Collection)
	assert.Equal(t, "replace", cfg.Catalog.BuildMode)
	assert.Equal(t, 500*time.Millisecond, cfg.Catalog.RetryDelay)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	assert.Equal(t, 10, cfg.Pipeline.K)
	assert.Equal(t, "올이즈굿", cfg.Pipeline.Company)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
ai:
  generation_model: gpt-4o
catalog:
  collection: inventory
  build_mode: append
database:
  driver: postgres
  dsn: postgres://sales:secret@db:5432/sales
pipeline:
  workers: 4
  owner: 김하늘
`)
	t.Setenv("OOH_PIPELINE_WORKERS", "8")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.AI.GenerationModel)
	assert.Equal(t, "sk-test", cfg.AI.Token)
	assert.Equal(t, "inventory", cfg.Catalog.Collection)
	assert.Equal(t, "append", cfg.Catalog.BuildMode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, "김하늘", cfg.Pipeline.Owner)

	provider := cfg.AI.ProviderConfig()
	assert.Equal(t, "gpt-4o", provider.GenerationModel)
	assert.Equal(t, "sk-test", provider.Token)
	require.NoError(t, provider.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	unsetForTest(t, "OOH_PIPELINE_OWNER")
	envFile := writeFile(t, "test.env", "OOH_PIPELINE_OWNER=이준\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "이준", cfg.Pipeline.Owner)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing env file", func(t *testing.T) {
		_, err := Load("", filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "database:\n  driver: mysql\n")
		_, err := Load(path, "")
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("bad build mode", func(t *testing.T) {
		t.Setenv("OOH_CATALOG_BUILD_MODE", "merge")
		_, err := Load("", "")
		assert.ErrorContains(t, err, "BuildMode")
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("OOH_PIPELINE_WORKERS", "0")
		_, err := Load("", "")
		assert.ErrorContains(t, err, "Workers")
	})
}
