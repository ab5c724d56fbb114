package cache

// Test Plan:
// 1. A file change under a watched directory evicts its cache entry
// 2. Stop is idempotent and terminates the event loop

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherEvictsChangedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filePath := filepath.Join(dir, "app.ts")
	require.NoError(t, os.WriteFile(filePath, []byte("class Foo {}\n"), 0o644))

	absPath, err := filepath.Abs(filePath)
	require.NoError(t, err)

	store, err := NewMemoryStore(16)
	require.NoError(t, err)
	defer store.Close()

	entry := sampleEntry(absPath)
	require.NoError(t, store.Put(entry))

	watcher, err := NewWatcher(store, dir)
	require.NoError(t, err)
	defer watcher.Stop()

	watcher.Start(context.Background())

	// Let the watch loop settle before mutating the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filePath, []byte("class Bar {}\n"), 0o644))

	// Eviction happens after the debounce window.
	assert.Eventually(t, func() bool {
		_, found := store.Get(absPath)
		return !found
	}, 5*time.Second, 100*time.Millisecond)
}

func TestWatcherStopIdempotent(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStore(4)
	require.NoError(t, err)
	defer store.Close()

	watcher, err := NewWatcher(store, t.TempDir())
	require.NoError(t, err)

	watcher.Start(context.Background())
	watcher.Stop()
	watcher.Stop()
}
