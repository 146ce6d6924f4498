package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/csvingest/internal/schema"
)

// ErrUnknownDataset is returned for dataset keys that were never registered.
var ErrUnknownDataset = errors.New("unknown dataset")

var (
	registry   = make(map[string]Dataset)
	registryMu sync.RWMutex
)

// Register adds a dataset to the registry.
// Panics if a dataset with the same key is already registered.
func Register(ds Dataset) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[ds.Key]; exists {
		panic(fmt.Sprintf("dataset already registered: %s", ds.Key))
	}

	// Populate RequiredColumns from Rules if not set
	if len(ds.RequiredColumns) == 0 && len(ds.Rules) > 0 {
		ds.RequiredColumns = schema.Columns(ds.Rules)
	}

	registry[ds.Key] = ds
}

// Get returns a dataset by key.
// Returns false if not found.
func Get(key string) (Dataset, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ds, ok := registry[key]
	return ds, ok
}

// Lookup is Get with an error suitable for returning to callers.
func Lookup(key string) (Dataset, error) {
	ds, ok := Get(key)
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrUnknownDataset, key)
	}
	return ds, nil
}

// All returns all registered datasets sorted by key.
func All() []Dataset {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Dataset, 0, len(registry))
	for _, ds := range registry {
		result = append(result, ds)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// DatasetCount returns the number of registered datasets.
func DatasetCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered datasets.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Dataset)
}
