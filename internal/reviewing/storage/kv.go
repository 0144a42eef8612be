package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gaqzi/star-reviews/internal/platform/kv"
	"github.com/gaqzi/star-reviews/internal/reviewing"
)

// DefaultKey is where the reviews have always been kept.
const DefaultKey = "hotel_reviews_v1"

// maxSafeInteger is the largest integer the browser could have written without losing precision.
const maxSafeInteger = 1<<53 - 1

// KVStore keeps the reviews as a JSON list under a single key.
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

type storedReview struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Comment   string `json:"comment"`
	Stars     int    `json:"stars"`
	CreatedAt int64  `json:"createdAt"`
}

func (s *KVStore) Save(ctx context.Context, reviews []reviewing.Review) error {
	records := make([]storedReview, 0, len(reviews))
	for _, r := range reviews {
		records = append(records, storedReview{
			ID:        r.ID,
			Name:      r.Name,
			Comment:   r.Comment,
			Stars:     r.Stars,
			CreatedAt: r.CreatedAt.UnixMilli(),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode reviews: %w", err)
	}

	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save reviews: %w", err)
	}

	return nil
}

// Load parses every stored entry and drops the ones that can't be made into a review.
// Entries with an out of range star value are kept as is.
func (s *KVStore) Load(ctx context.Context) ([]reviewing.Review, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []reviewing.Review{}, nil
		}

		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &MalformedError{Key: s.key, Err: err}
	}

	ret := make([]reviewing.Review, 0, len(entries))
	for i, raw := range entries {
		review, err := parseReview(raw)
		if err != nil {
			slog.Warn("dropping malformed stored review", "key", s.key, "index", i, "error", err)
			continue
		}

		ret = append(ret, review)
	}

	return ret, nil
}

func parseReview(raw json.RawMessage) (reviewing.Review, error) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil || entry == nil {
		return reviewing.Review{}, fmt.Errorf("entry is not an object: %s", raw)
	}

	id, err := parseID(entry["id"])
	if err != nil {
		return reviewing.Review{}, fmt.Errorf("id: %w", err)
	}

	name, err := parseString(entry["name"])
	if err != nil {
		return reviewing.Review{}, fmt.Errorf("name: %w", err)
	}
	comment, err := parseString(entry["comment"])
	if err != nil {
		return reviewing.Review{}, fmt.Errorf("comment: %w", err)
	}

	stars, err := parseInteger(entry["stars"])
	if err != nil {
		return reviewing.Review{}, fmt.Errorf("stars: %w", err)
	}

	createdAt, err := parseInteger(entry["createdAt"])
	if err != nil {
		return reviewing.Review{}, fmt.Errorf("createdAt: %w", err)
	}

	return reviewing.Review{
		ID:        id,
		Name:      name,
		Comment:   comment,
		Stars:     int(stars),
		CreatedAt: time.UnixMilli(createdAt).UTC(),
	}, nil
}

// parseID accepts the usual UUID strings and the timestamp ids older entries were created with.
func parseID(raw json.RawMessage) (string, error) {
	var id any
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", err
	}

	switch v := id.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", errors.New("is blank")
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported type %T", id)
	}
}

func parseString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("is missing")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}

	return s, nil
}

// parseInteger takes a JSON number, or a string holding one, that has no fractional part.
func parseInteger(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, errors.New("is missing")
	}

	text := string(raw)
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		text = strings.TrimSpace(quoted)
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number", raw)
	}
	if n != math.Trunc(n) || math.Abs(n) > maxSafeInteger {
		return 0, fmt.Errorf("%s is not a whole number in range", raw)
	}

	return int64(n), nil
}
