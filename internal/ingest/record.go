// Package ingest loads a document corpus (YAML or JSON) and feeds it into
// an engine.Engine. It plays the role the teacher's utils.LoadDocuments
// played for a Wikipedia abstract dump, adapted to this spec's document
// shape: id, text, status, and a rating vector instead of title/url/text.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/devancy/search-server/internal/engine"
)

// Record is one corpus entry as it appears in the YAML/JSON source file.
type Record struct {
	ID      int    `mapstructure:"id" validate:"gte=0"`
	Text    string `mapstructure:"text" validate:"required"`
	Status  string `mapstructure:"status" validate:"required,oneof=ACTUAL IRRELEVANT BANNED REMOVED"`
	Ratings []int  `mapstructure:"ratings"`
}

var validate = validator.New()

// LoadRecords reads and validates every record in path, but does not touch
// an engine — validation runs over the whole batch up front so a single
// bad record is reported before any document is added, matching
// AddDocument's own "no partial mutation on failure" rule at the corpus
// level.
func LoadRecords(path string) ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported corpus format: %s", ext)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("corpus file %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	var wrapper struct {
		Documents []Record `mapstructure:"documents"`
	}
	if err := k.UnmarshalWithConf("", &wrapper, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return nil, fmt.Errorf("unmarshal corpus %s: %w", path, err)
	}

	for i, rec := range wrapper.Documents {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("corpus record %d (id=%d): %w", i, rec.ID, err)
		}
	}
	return wrapper.Documents, nil
}

// AddAll feeds every record into e in file order, logging each add via
// logger. Ingestion is sequential by construction: AddDocument is a write
// and the engine requires writers to serialize against each other
// (spec.md §5).
func AddAll(e *engine.Engine, records []Record, logger zerolog.Logger) error {
	for _, rec := range records {
		status, err := engine.ParseDocumentStatus(rec.Status)
		if err != nil {
			return fmt.Errorf("record id=%d: %w", rec.ID, err)
		}
		if err := e.AddDocument(rec.ID, rec.Text, status, rec.Ratings); err != nil {
			return fmt.Errorf("record id=%d: %w", rec.ID, err)
		}
		logger.Debug().Int("id", rec.ID).Str("status", status.String()).Msg("document indexed")
	}
	return nil
}
