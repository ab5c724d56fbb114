package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	file_path     TEXT PRIMARY KEY,
	id            TEXT NOT NULL,
	file_hash     TEXT NOT NULL,
	last_modified INTEGER NOT NULL,
	language      TEXT NOT NULL,
	parse_time_ms INTEGER NOT NULL,
	parse_result  BLOB,
	symbols       BLOB,
	imports       BLOB,
	exports       BLOB,
	structure     TEXT,
	updated_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_cache_language ON analysis_cache(language);
`

// SQLiteStore persists cache entries in a single SQLite table. A Put is an
// INSERT OR REPLACE of the whole row; SQLite serializes writers, so
// concurrent same-file analysis degrades to last-write-wins.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the entry for a file path, if present.
func (s *SQLiteStore) Get(filePath string) (*Entry, bool) {
	row := s.db.QueryRow(`
		SELECT id, file_hash, last_modified, language, parse_time_ms,
		       parse_result, symbols, imports, exports, structure
		FROM analysis_cache WHERE file_path = ?`, filePath)

	entry := &Entry{FilePath: filePath}
	var lastModified int64
	err := row.Scan(&entry.ID, &entry.FileHash, &lastModified, &entry.Language,
		&entry.ParseTimeMs, &entry.ParseResult, &entry.Symbols,
		&entry.Imports, &entry.Exports, &entry.Structure)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			// Treat a corrupt row as a miss; the next Put overwrites it.
			return nil, false
		}
		return nil, false
	}
	entry.LastModified = time.Unix(0, lastModified)
	return entry, true
}

// Put replaces the whole row for the entry's file path.
func (s *SQLiteStore) Put(entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO analysis_cache
			(file_path, id, file_hash, last_modified, language, parse_time_ms,
			 parse_result, symbols, imports, exports, structure, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.FilePath, entry.ID, entry.FileHash, entry.LastModified.UnixNano(),
		entry.Language, entry.ParseTimeMs,
		[]byte(entry.ParseResult), []byte(entry.Symbols),
		[]byte(entry.Imports), []byte(entry.Exports),
		entry.Structure, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write cache entry for %s: %w", entry.FilePath, err)
	}
	return nil
}

// Delete drops the row for a file path.
func (s *SQLiteStore) Delete(filePath string) error {
	if _, err := s.db.Exec(`DELETE FROM analysis_cache WHERE file_path = ?`, filePath); err != nil {
		return fmt.Errorf("failed to delete cache entry for %s: %w", filePath, err)
	}
	return nil
}

// Stats returns entry counts grouped by language, for cache maintenance.
func (s *SQLiteStore) Stats() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT language, COUNT(*) FROM analysis_cache GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("failed to scan cache stats: %w", err)
		}
		stats[language] = count
	}
	return stats, rows.Err()
}

// Clear removes every cache entry.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM analysis_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
