// Package cache memoizes analysis results per file. The engine is the sole
// writer; entries are keyed by absolute file path and validated against
// content hash and modification time. Writes replace whole entries and are
// best-effort: a persistence failure never affects the analysis result.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry is one cached analysis result. A write always replaces the whole
// entry; entries are never partially updated.
type Entry struct {
	ID           string          `json:"id"`
	FilePath     string          `json:"filePath"`
	FileHash     string          `json:"fileHash"`
	LastModified time.Time       `json:"lastModified"`
	Language     string          `json:"language"`
	ParseTimeMs  int64           `json:"parseTimeMs"`
	ParseResult  json.RawMessage `json:"parseResult,omitempty"`
	Symbols      json.RawMessage `json:"symbols,omitempty"`
	Imports      json.RawMessage `json:"imports,omitempty"`
	Exports      json.RawMessage `json:"exports,omitempty"`
	Structure    string          `json:"structure,omitempty"`
}

// Valid reports whether the entry still matches the file's current content
// hash and modification time. Both must match for a hit.
func (e *Entry) Valid(fileHash string, lastModified time.Time) bool {
	return e.FileHash == fileHash && e.LastModified.Equal(lastModified)
}

// Store is the persistence contract the engine consumes.
type Store interface {
	// Get returns the entry for an absolute file path, if present.
	Get(filePath string) (*Entry, bool)
	// Put replaces the entry for the entry's file path.
	Put(entry *Entry) error
	// Delete drops the entry for a file path, if present.
	Delete(filePath string) error
	Close() error
}

// DefaultLocation returns the default SQLite cache path, ~/.prism/cache.db.
func DefaultLocation() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prism-cache.db"
	}
	return filepath.Join(home, ".prism", "cache.db")
}

// OpenStore builds the configured store: a bounded memory front over the
// SQLite backing store, or a no-op store when caching is disabled. An empty
// location selects the default path.
func OpenStore(enabled bool, location string, memoryCapacity int) (Store, error) {
	if !enabled {
		return NoopStore{}, nil
	}
	if location == "" {
		location = DefaultLocation()
	}
	backing, err := NewSQLiteStore(location)
	if err != nil {
		return nil, err
	}
	tiered, err := NewTieredStore(backing, memoryCapacity)
	if err != nil {
		backing.Close()
		return nil, err
	}
	return tiered, nil
}

// NoopStore disables caching: never hits, drops writes.
type NoopStore struct{}

func (NoopStore) Get(string) (*Entry, bool) { return nil, false }
func (NoopStore) Put(*Entry) error          { return nil }
func (NoopStore) Delete(string) error       { return nil }
func (NoopStore) Close() error              { return nil }
