package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

const knowledgeBaseSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "answer"],
				"properties": {
					"question": {"type": "string"},
					"answer":   {"type": "string"}
				}
			}
		}
	}
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(knowledgeBaseSchema))
})

// JSONBackend keeps the knowledge base in a single JSON file of the form
// {"questions": [{"question": ..., "answer": ...}, ...]}.
type JSONBackend struct {
	path string
}

func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

func (b *JSONBackend) Path() string { return b.path }

func (b *JSONBackend) Describe() string { return "json:" + b.path }

// Load reads and validates the file. A missing file is the normal first-run
// case; unreadable or malformed content is discarded with a warning.
func (b *JSONBackend) Load() *KnowledgeBase {
	log := logrus.WithField("path", b.path)

	data, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("knowledge base unreadable, starting empty")
		}
		return Empty()
	}

	kb, err := decodeKnowledgeBase(data)
	if err != nil {
		log.WithError(err).WithField("discarded_bytes", len(data)).
			Warn("knowledge base malformed, starting empty")
		return Empty()
	}
	log.WithField("records", kb.Len()).Debug("knowledge base loaded")
	return kb
}

// Save truncates the file and writes the whole knowledge base. The write is
// not atomic; a torn file is recovered by Load's fallback.
func (b *JSONBackend) Save(kb *KnowledgeBase) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(kb)); err != nil {
		return fmt.Errorf("encoding knowledge base: %w", err)
	}
	if err := os.WriteFile(b.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing knowledge base %s: %w", b.path, err)
	}
	return nil
}

func (b *JSONBackend) Close() error { return nil }

func decodeKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("unexpected shape: %s", strings.Join(errs, "; "))
	}

	var kb KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return normalize(&kb), nil
}

func normalize(kb *KnowledgeBase) *KnowledgeBase {
	if kb == nil {
		return Empty()
	}
	if kb.Questions == nil {
		kb.Questions = []Record{}
	}
	return kb
}
