// Package kv describes the key-value substrate both widgets persist their aggregates in.
// Every aggregate is stored as the single value under its own key, and every mutation
// overwrites the whole value.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been stored under the key.
var ErrNotFound = errors.New("no value stored for key")

type Store interface {
	// Get returns the value stored for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces whatever is stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing a key that doesn't exist is not an error.
	Remove(ctx context.Context, key string) error
}
