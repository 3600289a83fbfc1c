package repository

import (
	"context"
	"sync"
)

// MemoryRepository keeps session entries for the lifetime of the process.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: map[string]string{}}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[key]
	return v, ok, nil
}

func (r *MemoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.entries, k)
	}
	return nil
}
