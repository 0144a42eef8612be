package rating

import "context"

type Storage interface {
	// Load returns the stored aggregate, or the zero Aggregate when nothing is stored.
	Load(ctx context.Context) (Aggregate, error)

	Save(ctx context.Context, a Aggregate) error

	// Remove deletes the stored aggregate.
	Remove(ctx context.Context) error
}
