// Package repo contains all persistence logic for the travel planner.
// State is kept as JSON documents in a small key-value table; kv.go defines
// the port, postgres.go, sqlite.go and memory.go the backends, and store.go
// the typed stores the service layer depends on.
// No business logic lives here: only SQL, keys and JSON mapping.
package repo

import (
	"context"
	"maps"
	"slices"
)

// Batch is a set of writes applied atomically: every put and delete lands,
// or none does.
type Batch struct {
	Puts    map[string][]byte
	Deletes []string
}

// Put adds a key to the batch.
func (b *Batch) Put(key string, value []byte) {
	if b.Puts == nil {
		b.Puts = make(map[string][]byte)
	}
	b.Puts[key] = value
}

// Delete schedules a key for removal.
func (b *Batch) Delete(key string) {
	b.Deletes = append(b.Deletes, key)
}

// sortedKeys returns the put keys in a stable order so backends always lock
// rows in the same sequence.
func (b Batch) sortedKeys() []string {
	return slices.Sorted(maps.Keys(b.Puts))
}

// KV is the key-value port behind every store.
type KV interface {
	// Get returns the raw JSON stored under key.
	// Returns domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Write applies a batch in one transaction. Deleting an absent key is
	// not an error.
	Write(ctx context.Context, b Batch) error
}
