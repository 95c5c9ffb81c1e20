package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore is an in-process store for small records. It is bounded by
// size; when full the least recently used key is dropped.
type MemoryStore struct {
	entries *lru.Cache[string, Entry]
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	entries, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("couldn't create memory store: %w", err)
	}
	return &MemoryStore{entries: entries}, nil
}

func (ms *MemoryStore) Load(_ context.Context, key string) (Entry, bool, error) {
	entry, found := ms.entries.Get(key)
	return entry, found, nil
}

func (ms *MemoryStore) Save(_ context.Context, entry Entry) error {
	ms.entries.Add(entry.Key, entry)
	return nil
}

func (ms *MemoryStore) Len() int {
	return ms.entries.Len()
}
