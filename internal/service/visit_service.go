package service

import (
	"context"
	"fmt"
)

// VisitsKey is the counter incremented once per page request
const VisitsKey = "visits"

// VisitService records site visits in a persisted counter
type VisitService struct {
	repo CounterRepository
}

// CounterRepository interface for dependency injection. Implementations must
// make IncrementAndGet atomic.
type CounterRepository interface {
	IncrementAndGet(ctx context.Context, key string) (uint64, error)
	Get(ctx context.Context, key string) (uint64, error)
}

// NewVisitService creates a new visit service
func NewVisitService(repo CounterRepository) *VisitService {
	return &VisitService{repo: repo}
}

// RecordVisit increments the visit counter and returns the new total
func (s *VisitService) RecordVisit(ctx context.Context) (uint64, error) {
	count, err := s.repo.IncrementAndGet(ctx, VisitsKey)
	if err != nil {
		return 0, fmt.Errorf("service: failed to record visit: %w", err)
	}
	return count, nil
}

// Visits returns the current total without incrementing it
func (s *VisitService) Visits(ctx context.Context) (uint64, error) {
	count, err := s.repo.Get(ctx, VisitsKey)
	if err != nil {
		return 0, fmt.Errorf("service: failed to read visits: %w", err)
	}
	return count, nil
}
