package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
	"github.com/gaqzi/star-reviews/internal/rating"
)

// DefaultKey is where the rating has always been kept.
const DefaultKey = "ratingApp_case28"

// KVStore keeps the aggregate as a single JSON object under one key.
type KVStore struct {
	store kv.Store
	key   string
}

func NewKVStore(store kv.Store, key string) *KVStore {
	if key == "" {
		key = DefaultKey
	}

	return &KVStore{store: store, key: key}
}

type storedRating struct {
	TotalScore int `json:"totalScore"`
	TotalVotes int `json:"totalVotes"`
	MyRating   int `json:"myRating"`
}

// Load returns the zero aggregate when nothing is stored, and a *MalformedError when what's stored
// can't be trusted.
func (s *KVStore) Load(ctx context.Context) (rating.Aggregate, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return rating.Aggregate{}, nil
		}

		return rating.Aggregate{}, fmt.Errorf("failed to load rating: %w", err)
	}

	var stored *storedRating
	if err := json.Unmarshal(data, &stored); err != nil {
		return rating.Aggregate{}, &MalformedError{Key: s.key, Err: err}
	}
	if stored == nil {
		return rating.Aggregate{}, nil
	}

	aggregate := rating.Aggregate{
		TotalScore: stored.TotalScore,
		TotalVotes: stored.TotalVotes,
		MyRating:   stored.MyRating,
	}
	if err := aggregate.Valid(); err != nil {
		return rating.Aggregate{}, &MalformedError{Key: s.key, Err: err}
	}

	return aggregate, nil
}

func (s *KVStore) Save(ctx context.Context, a rating.Aggregate) error {
	data, err := json.Marshal(storedRating{
		TotalScore: a.TotalScore,
		TotalVotes: a.TotalVotes,
		MyRating:   a.MyRating,
	})
	if err != nil {
		return fmt.Errorf("failed to encode rating: %w", err)
	}

	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	return nil
}

func (s *KVStore) Remove(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("failed to remove rating: %w", err)
	}

	return nil
}

type MalformedError struct {
	Key string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("rating stored under %q is malformed: %s", e.Key, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
