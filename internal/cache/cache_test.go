package cache

// Test Plan:
// 1. Entry validation requires both hash and mtime to match
// 2. SQLite store round-trips whole entries and supports delete/stats/clear
// 3. Put replaces the entire row for a path
// 4. Memory store evicts nothing within capacity and supports delete
// 5. Tiered store reads through to the backing store and repopulates
// 6. OpenStore honors the enabled flag

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(filePath string) *Entry {
	return &Entry{
		FilePath:     filePath,
		FileHash:     "abc123",
		LastModified: time.Unix(0, 1724400000000000000),
		Language:     "typescript",
		ParseTimeMs:  12,
		ParseResult:  json.RawMessage(`{"success":true}`),
		Symbols:      json.RawMessage(`[{"name":"Foo"}]`),
		Imports:      json.RawMessage(`["./dep"]`),
		Exports:      json.RawMessage(`["Foo"]`),
		Structure:    "# Structure: app.ts\n",
	}
}

func TestEntryValid(t *testing.T) {
	t.Parallel()

	entry := sampleEntry("/src/app.ts")

	assert.True(t, entry.Valid("abc123", entry.LastModified))
	assert.False(t, entry.Valid("different", entry.LastModified))
	assert.False(t, entry.Valid("abc123", entry.LastModified.Add(time.Second)))
	assert.False(t, entry.Valid("different", entry.LastModified.Add(time.Second)))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	_, found := store.Get("/src/app.ts")
	assert.False(t, found)

	entry := sampleEntry("/src/app.ts")
	require.NoError(t, store.Put(entry))
	assert.NotEmpty(t, entry.ID, "Put assigns an id when missing")

	got, found := store.Get("/src/app.ts")
	require.True(t, found)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.FileHash, got.FileHash)
	assert.True(t, entry.LastModified.Equal(got.LastModified))
	assert.Equal(t, entry.Language, got.Language)
	assert.Equal(t, entry.ParseTimeMs, got.ParseTimeMs)
	assert.JSONEq(t, string(entry.ParseResult), string(got.ParseResult))
	assert.Equal(t, entry.Structure, got.Structure)
}

func TestSQLiteStorePutReplaces(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(sampleEntry("/src/app.ts")))

	updated := sampleEntry("/src/app.ts")
	updated.FileHash = "def456"
	updated.Structure = "# Structure: app.ts (new)\n"
	require.NoError(t, store.Put(updated))

	got, found := store.Get("/src/app.ts")
	require.True(t, found)
	assert.Equal(t, "def456", got.FileHash)
	assert.Equal(t, updated.Structure, got.Structure)
}

func TestSQLiteStoreDelete(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(sampleEntry("/src/app.ts")))
	require.NoError(t, store.Delete("/src/app.ts"))

	_, found := store.Get("/src/app.ts")
	assert.False(t, found)

	// Deleting a missing path is not an error.
	assert.NoError(t, store.Delete("/src/never-there.ts"))
}

func TestSQLiteStoreStatsAndClear(t *testing.T) {
	t.Parallel()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	ts := sampleEntry("/src/a.ts")
	require.NoError(t, store.Put(ts))
	ts2 := sampleEntry("/src/b.ts")
	require.NoError(t, store.Put(ts2))
	py := sampleEntry("/src/c.py")
	py.Language = "python"
	require.NoError(t, store.Put(py))

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"typescript": 2, "python": 1}, stats)

	require.NoError(t, store.Clear())
	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStore(16)
	require.NoError(t, err)
	defer store.Close()

	_, found := store.Get("/src/app.ts")
	assert.False(t, found)

	entry := sampleEntry("/src/app.ts")
	require.NoError(t, store.Put(entry))

	got, found := store.Get("/src/app.ts")
	require.True(t, found)
	assert.Same(t, entry, got)

	require.NoError(t, store.Delete("/src/app.ts"))
	_, found = store.Get("/src/app.ts")
	assert.False(t, found)
}

func TestTieredStoreReadThrough(t *testing.T) {
	t.Parallel()

	backing, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)

	tiered, err := NewTieredStore(backing, 16)
	require.NoError(t, err)
	defer tiered.Close()

	// Seed the backing store only; the tiered read falls through and
	// repopulates the front.
	require.NoError(t, backing.Put(sampleEntry("/src/app.ts")))

	got, found := tiered.Get("/src/app.ts")
	require.True(t, found)
	assert.Equal(t, "abc123", got.FileHash)

	front, found := tiered.front.Get("/src/app.ts")
	require.True(t, found, "miss repopulates the memory front")
	assert.Equal(t, got, front)

	// Delete clears both layers.
	require.NoError(t, tiered.Delete("/src/app.ts"))
	_, found = tiered.Get("/src/app.ts")
	assert.False(t, found)
}

func TestNoopStore(t *testing.T) {
	t.Parallel()

	store := NoopStore{}
	require.NoError(t, store.Put(sampleEntry("/src/app.ts")))
	_, found := store.Get("/src/app.ts")
	assert.False(t, found)
	assert.NoError(t, store.Delete("/src/app.ts"))
	assert.NoError(t, store.Close())
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	disabled, err := OpenStore(false, "", 16)
	require.NoError(t, err)
	assert.IsType(t, NoopStore{}, disabled)

	location := filepath.Join(t.TempDir(), "cache.db")
	enabled, err := OpenStore(true, location, 16)
	require.NoError(t, err)
	defer enabled.Close()

	require.NoError(t, enabled.Put(sampleEntry("/src/app.ts")))
	_, found := enabled.Get("/src/app.ts")
	assert.True(t, found)
}
