package repository

import (
	"context"
	"sync"
)

// MemoryRepository is a process-local counter store. Counts are lost on
// restart.
type MemoryRepository struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{counters: make(map[string]uint64)}
}

func (r *MemoryRepository) IncrementAndGet(ctx context.Context, key string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key]++
	return r.counters[key], nil
}

func (r *MemoryRepository) Get(ctx context.Context, key string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[key], nil
}
