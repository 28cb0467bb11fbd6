// Package config loads search-server's runtime configuration from layered
// sources — defaults, an optional config file, then environment variables
// — the way necyber-goclaw's config.Loader layers koanf providers.
package config

// Config is the full runtime configuration for the CLI.
type Config struct {
	// Corpus is where documents are ingested from.
	Corpus CorpusConfig `mapstructure:"corpus" validate:"required"`

	// Engine tunes the search engine's concurrency behavior.
	Engine EngineConfig `mapstructure:"engine" validate:"required"`

	// Log controls the CLI's logging verbosity and format.
	Log LogConfig `mapstructure:"log" validate:"required"`
}

// CorpusConfig describes where and how documents are loaded.
type CorpusConfig struct {
	// Path to a YAML or JSON document corpus.
	Path string `mapstructure:"path"`

	// StopWords is the immutable stop-word list passed to engine.New.
	StopWords []string `mapstructure:"stop_words"`
}

// EngineConfig tunes engine-wide defaults.
type EngineConfig struct {
	// DefaultParallel selects Parallel as the default execution policy
	// for the CLI's search and match subcommands (match only when its
	// --parallel flag isn't given). batch and dedupe do not read it.
	DefaultParallel bool `mapstructure:"default_parallel"`

	// MaxResults caps how many results the CLI prints per page; the
	// engine itself always caps FindTopDocuments at 5 (spec.md §4.6).
	MaxResults int `mapstructure:"max_results" validate:"min=1"`

	// ShardCount sets the sharded map's bucket count the parallel scorer
	// uses (spec.md §4.5). Passed to engine.NewWithShardCount.
	ShardCount int `mapstructure:"shard_count" validate:"min=1"`
}

// LogConfig controls zerolog setup.
type LogConfig struct {
	// Level is one of: debug, info, warn, error.
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path:      "corpus.yaml",
			StopWords: nil,
		},
		Engine: EngineConfig{
			DefaultParallel: false,
			MaxResults:      5,
			ShardCount:      16,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
