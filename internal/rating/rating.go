// Package rating is the simple star rating: one local user casting, and changing, a single vote
// against a running total. The totals are a simulated aggregate, not a tally of distinct people.
package rating

import (
	"context"
	"fmt"

	"github.com/gaqzi/star-reviews/internal/platform/display"
	"github.com/gaqzi/star-reviews/internal/platform/validate"
)

const (
	MinVote = 1
	MaxVote = 5
)

type Aggregate struct {
	// TotalScore is the sum of every voter's latest vote.
	TotalScore int
	// TotalVotes only goes up, and only on a first vote.
	TotalVotes int
	// MyRating is the local user's latest vote, 0 until they have voted.
	MyRating int
}

// HasVoted reports whether the local user has cast a vote.
func (a Aggregate) HasVoted() bool {
	return a.MyRating != 0
}

type vote struct {
	Value int `validate:"min=1,max=5"`
}

// Cast records the local user's vote. The first vote adds a voter, later votes replace
// the previous one in the score and leave the voter count alone.
func (a Aggregate) Cast(ctx context.Context, value int) (Aggregate, error) {
	if err := validate.Struct(ctx, vote{Value: value}); err != nil {
		return a, &InvalidVoteError{Value: value}
	}

	if a.HasVoted() {
		a.TotalScore += value - a.MyRating
	} else {
		a.TotalVotes++
		a.TotalScore += value
	}
	a.MyRating = value

	return a, nil
}

// Average is 0 when nobody has voted.
func (a Aggregate) Average() float64 {
	if a.TotalVotes <= 0 {
		return 0
	}

	return float64(a.TotalScore) / float64(a.TotalVotes)
}

// AverageFormatted shows one decimal once there are votes, and a plain "0" before that.
func (a Aggregate) AverageFormatted() string {
	if a.TotalVotes <= 0 {
		return "0"
	}

	return display.OneDecimal(a.Average())
}

// Valid checks the invariants a stored aggregate must hold.
func (a Aggregate) Valid() error {
	switch {
	case a.TotalVotes < 0:
		return fmt.Errorf("total votes is negative: %d", a.TotalVotes)
	case a.MyRating < 0 || a.MyRating > MaxVote:
		return fmt.Errorf("my rating is out of range: %d", a.MyRating)
	case a.MyRating > 0 && a.TotalVotes == 0:
		return fmt.Errorf("my rating is %d without any votes", a.MyRating)
	default:
		return nil
	}
}

type InvalidVoteError struct {
	Value int
}

func (e *InvalidVoteError) Error() string {
	return fmt.Sprintf("vote must be between %d and %d, got %d", MinVote, MaxVote, e.Value)
}

// WriteError means the vote happened in memory but couldn't be persisted.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to persist rating: %s", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
