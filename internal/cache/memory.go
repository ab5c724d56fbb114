package cache

import (
	"fmt"

	"github.com/maypok86/otter"
)

// MemoryStore is a bounded in-memory store backed by otter. Used standalone
// in tests and as the hot layer of a TieredStore.
type MemoryStore struct {
	entries otter.Cache[string, *Entry]
}

// NewMemoryStore creates an in-memory store holding at most capacity
// entries.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	entries, err := otter.MustBuilder[string, *Entry](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory cache: %w", err)
	}
	return &MemoryStore{entries: entries}, nil
}

func (m *MemoryStore) Get(filePath string) (*Entry, bool) {
	return m.entries.Get(filePath)
}

func (m *MemoryStore) Put(entry *Entry) error {
	m.entries.Set(entry.FilePath, entry)
	return nil
}

func (m *MemoryStore) Delete(filePath string) error {
	m.entries.Delete(filePath)
	return nil
}

func (m *MemoryStore) Close() error {
	m.entries.Close()
	return nil
}

// TieredStore layers a bounded in-memory front over a persistent backing
// store. Reads fall through to the backing store and repopulate the front;
// writes go to both.
type TieredStore struct {
	front   *MemoryStore
	backing Store
}

// NewTieredStore combines a memory front of the given capacity with a
// backing store.
func NewTieredStore(backing Store, capacity int) (*TieredStore, error) {
	front, err := NewMemoryStore(capacity)
	if err != nil {
		return nil, err
	}
	return &TieredStore{front: front, backing: backing}, nil
}

func (t *TieredStore) Get(filePath string) (*Entry, bool) {
	if entry, ok := t.front.Get(filePath); ok {
		return entry, true
	}
	entry, ok := t.backing.Get(filePath)
	if ok {
		_ = t.front.Put(entry)
	}
	return entry, ok
}

func (t *TieredStore) Put(entry *Entry) error {
	_ = t.front.Put(entry)
	return t.backing.Put(entry)
}

func (t *TieredStore) Delete(filePath string) error {
	_ = t.front.Delete(filePath)
	return t.backing.Delete(filePath)
}

func (t *TieredStore) Close() error {
	_ = t.front.Close()
	return t.backing.Close()
}
