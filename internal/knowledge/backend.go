package knowledge

import (
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned by NewBackend for an unrecognized type.
var ErrUnknownBackend = errors.New("unknown backend type")

// Backend is the durable representation of a KnowledgeBase. Both the JSON
// file and SQLite backends implement this.
type Backend interface {
	// Load reads the full knowledge base. It never fails: absent or
	// malformed data yields an empty knowledge base.
	Load() *KnowledgeBase

	// Save overwrites the durable representation with kb.
	Save(kb *KnowledgeBase) error

	// Describe names the backend and its location, for logs.
	Describe() string

	// Close releases any resources held by the backend.
	Close() error
}

// NewBackend constructs the appropriate backend for kind ("json" or "sqlite").
func NewBackend(kind, jsonPath, sqlitePath string) (Backend, error) {
	switch kind {
	case "json", "":
		return NewJSONBackend(jsonPath), nil
	case "sqlite":
		return NewSQLiteBackend(sqlitePath)
	default:
		return nil, fmt.Errorf("%w: %q (must be 'json' or 'sqlite')", ErrUnknownBackend, kind)
	}
}
