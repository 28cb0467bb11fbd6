package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix environment variables must carry to be picked up
// (e.g. SEARCHSERVER_CORPUS_PATH).
const EnvPrefix = "SEARCHSERVER_"

// Delimiter is the key delimiter for nested config.
const Delimiter = "."

// Loader layers configuration sources: defaults, an optional file, then
// environment variables, highest priority last.
type Loader struct {
	k *koanf.Koanf
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{k: koanf.New(Delimiter)}
}

// Load resolves defaults -> configPath (if non-empty) -> environment
// variables into a validated Config.
func (l *Loader) Load(configPath string) (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := l.loadFile(configPath); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	d := DefaultConfig()
	// Flat leaf keys, so a file or env section that sets only some keys of
	// a section keeps the defaults of the others.
	return l.k.Load(confmap.Provider(map[string]interface{}{
		"corpus.path":             d.Corpus.Path,
		"corpus.stop_words":       d.Corpus.StopWords,
		"engine.default_parallel": d.Engine.DefaultParallel,
		"engine.max_results":      d.Engine.MaxResults,
		"engine.shard_count":      d.Engine.ShardCount,
		"log.level":               d.Log.Level,
	}, Delimiter), nil)
}

func (l *Loader) loadFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", path)
	}
	return l.k.Load(file.Provider(path), parser)
}

func (l *Loader) loadEnv() error {
	// The first '_' after the prefix separates the section from the key
	// (SEARCHSERVER_ENGINE_MAX_RESULTS -> engine.max_results).
	return l.k.Load(env.Provider(EnvPrefix, Delimiter, func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", Delimiter, 1)
	}), nil)
}
