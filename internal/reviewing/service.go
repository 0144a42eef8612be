package reviewing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gaqzi/star-reviews/internal/platform/action"
)

// ClearAllPrompt is what the user is asked before all reviews are removed.
const ClearAllPrompt = "¿Seguro que quieres borrar todas las reseñas?"

// Service owns the reviews for the session. Commands run one at a time, each mutation
// is written through to storage before the command returns.
type Service struct {
	mu         sync.Mutex
	storage    Storage
	actions    *action.Mapper
	collection Collection
	filter     Filter
	sort       Sort
}

type Option func(*Service)

// WithActionMapper replaces the default pre-hooks, mostly useful in tests.
func WithActionMapper(m *action.Mapper) Option {
	return func(s *Service) {
		s.actions = m
	}
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		actions: reviewServiceActions(time.Now, uuid.NewV7),
		filter:  FilterAll,
		sort:    SortNewest,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads the stored reviews into memory. A failure to read is logged and leaves
// the service empty, an empty widget is better than one that doesn't work.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.storage.Load(ctx)
	if err != nil {
		slog.Warn("failed to load reviews, starting empty", "error", err)
		reviews = nil
	}

	s.collection = NewCollection(reviews)
}

// Submit validates the submission and stores it as the newest review.
// A *ValidationError means nothing changed, a *WriteError means the review was added but not persisted.
func (s *Service) Submit(ctx context.Context, submission Submission) (Review, error) {
	do, err := action.Lookup[func(context.Context, Submission) (Review, error)](s.actions, "Submit")
	if err != nil {
		return Review{}, fmt.Errorf("pre-submit action missing: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review, err := do(ctx, submission)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return Review{}, err
		}

		return Review{}, fmt.Errorf("pre-submit action failed: %w", err)
	}

	s.collection = s.collection.Add(review)

	return review, s.persist(ctx)
}

// Delete removes the review, deleting one that doesn't exist is fine.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection = s.collection.Remove(id)

	return s.persist(ctx)
}

// ClearAll removes every review if the confirmer agrees and reports whether it did.
func (s *Service) ClearAll(ctx context.Context, confirmer Confirmer) (bool, error) {
	if !confirmer.Confirm(ctx, ClearAllPrompt) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection = s.collection.Clear()

	return true, s.persist(ctx)
}

// SetFilter and SetSort are view preferences and are never persisted.
func (s *Service) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

func (s *Service) SetSort(sort Sort) {
	s.mu.Lock()
	s.sort = sort
	s.mu.Unlock()
}

// View returns the current filter and sort.
func (s *Service) View() (Filter, Sort) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter, s.sort
}

func (s *Service) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collection.Statistics()
}

// Visible returns the reviews matching the current filter in the current sort order.
func (s *Service) Visible() []Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collection.Visible(s.filter, s.sort)
}

// All returns every review in storage order.
func (s *Service) All() []Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collection.All()
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.collection.All()); err != nil {
		return &WriteError{Err: err}
	}

	return nil
}
