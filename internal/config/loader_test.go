package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  path: corpus.yaml
  stop_words: ["the", "a"]
engine:
  default_parallel: true
  max_results: 10
  shard_count: 32
log:
  level: debug
`), 0o644))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a"}, cfg.Corpus.StopWords)
	assert.True(t, cfg.Engine.DefaultParallel)
	assert.Equal(t, 10, cfg.Engine.MaxResults)
	assert.Equal(t, 32, cfg.Engine.ShardCount)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFilePartialEngineSectionKeepsShardCountDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  path: corpus.yaml
engine:
  max_results: 5
log:
  level: info
`), 0o644))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Engine.ShardCount, cfg.Engine.ShardCount, "an omitted shard_count key must fall back to the default, not zero")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := NewLoader().Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadUnsupportedExtensionFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("corpus=x"), 0o644))

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  path: corpus.yaml
engine:
  default_parallel: false
  max_results: 5
log:
  level: info
`), 0o644))

	t.Setenv("SEARCHSERVER_LOG_LEVEL", "warn")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  path: corpus.yaml
engine:
  max_results: 5
log:
  level: verbose
`), 0o644))

	_, err := NewLoader().Load(path)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
}
