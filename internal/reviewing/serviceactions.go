package reviewing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gaqzi/star-reviews/internal/platform/action"
)

// reviewServiceActions provides actions to be taken as pre-hooks in reviewing.Service.
// It keeps the logic of turning a submission into a review private while the service only does collaboration.
func reviewServiceActions(now func() time.Time, newID func() (uuid.UUID, error)) *action.Mapper {
	m := &action.Mapper{}

	m.Add("Submit", func(ctx context.Context, s Submission) (Review, error) {
		s, err := s.Validate(ctx)
		if err != nil {
			return Review{}, err
		}

		id, err := newID()
		if err != nil {
			return Review{}, fmt.Errorf("failed to generate review id: %w", err)
		}

		return Review{
			ID:      id.String(),
			Name:    s.Name,
			Comment: s.Comment,
			Stars:   s.Stars,
			// Stored with millisecond precision, so keep it at that from the start
			CreatedAt: now().UTC().Truncate(time.Millisecond),
		}, nil
	})

	return m
}
