package reviewing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gaqzi/star-reviews/internal/platform/action"
)

// These tests live inside the package because the actions are private. It's also why the `a` helpers
// aren't used here, that would be an import loop.
func TestActionMapper(t *testing.T) {
	now := time.Date(2025, time.January, 5, 10, 30, 15, 123456789, time.UTC)
	id := uuid.MustParse("0193dd86-b07e-7e73-a77e-724bee1fa176")
	mapper := reviewServiceActions(
		func() time.Time { return now },
		func() (uuid.UUID, error) { return id, nil },
	)

	t.Run("the default mapper covers all actions with custom behavior", func(t *testing.T) {
		require.Equal(
			t,
			[]string{"Submit"},
			mapper.All(),
			"expected all actions to be listed here so we catch when we add new or remove one",
		)
	})

	t.Run("Submit builds a review from the trimmed submission", func(t *testing.T) {
		do, err := action.Lookup[func(context.Context, Submission) (Review, error)](mapper, "Submit")
		require.NoError(t, err)

		review, err := do(context.Background(), Submission{Name: " Bob ", Comment: " Great breakfast buffet ", Stars: 3})
		require.NoError(t, err)

		require.Equal(
			t,
			Review{
				ID:        id.String(),
				Name:      "Bob",
				Comment:   "Great breakfast buffet",
				Stars:     3,
				CreatedAt: time.Date(2025, time.January, 5, 10, 30, 15, 123000000, time.UTC),
			},
			review,
			"expected the timestamp to be truncated to milliseconds",
		)
	})

	t.Run("Submit returns the validation error without generating an id", func(t *testing.T) {
		failing := reviewServiceActions(time.Now, func() (uuid.UUID, error) {
			t.Fatal("expected no id to be generated for an invalid submission")
			return uuid.Nil, nil
		})
		do, err := action.Lookup[func(context.Context, Submission) (Review, error)](failing, "Submit")
		require.NoError(t, err)

		_, err = do(context.Background(), Submission{Name: "Bob", Comment: "short", Stars: 3})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, CommentTooShort, validationErr.Reason)
	})

	t.Run("Submit wraps errors from generating the id", func(t *testing.T) {
		failing := reviewServiceActions(time.Now, func() (uuid.UUID, error) { return uuid.Nil, errors.New("uh-oh") })
		do, err := action.Lookup[func(context.Context, Submission) (Review, error)](failing, "Submit")
		require.NoError(t, err)

		_, err = do(context.Background(), Submission{Name: "Bob", Comment: "Great breakfast buffet", Stars: 3})

		require.ErrorContains(t, err, "failed to generate review id:")
	})
}
