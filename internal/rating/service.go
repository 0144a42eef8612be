package rating

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Service owns the rating for the session and writes every vote through to storage.
type Service struct {
	mu        sync.Mutex
	storage   Storage
	aggregate Aggregate
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Load reads the stored aggregate, falling back to no votes when it can't.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
}

func (s *Service) load(ctx context.Context) {
	aggregate, err := s.storage.Load(ctx)
	if err != nil {
		slog.Warn("failed to load rating, starting without votes", "error", err)
		aggregate = Aggregate{}
	}

	s.aggregate = aggregate
}

func (s *Service) Current() Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.aggregate
}

// CastVote records the vote and persists the aggregate.
// A *WriteError means the vote counts for the session but wasn't persisted.
func (s *Service) CastVote(ctx context.Context, value int) (Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	aggregate, err := s.aggregate.Cast(ctx, value)
	if err != nil {
		return s.aggregate, err
	}
	s.aggregate = aggregate

	if err := s.storage.Save(ctx, aggregate); err != nil {
		return aggregate, &WriteError{Err: err}
	}

	return aggregate, nil
}

// Reset removes the stored aggregate and starts over from what storage has, which is nothing.
func (s *Service) Reset(ctx context.Context) (Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(ctx); err != nil {
		return s.aggregate, fmt.Errorf("failed to reset rating: %w", &WriteError{Err: err})
	}

	s.load(ctx)

	return s.aggregate, nil
}
