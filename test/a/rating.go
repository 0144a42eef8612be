package a

import "github.com/gaqzi/star-reviews/internal/rating"

type BuilderRating struct {
	r rating.Aggregate
}

// Rating prepares a rating.Aggregate where nobody has voted yet.
func Rating() BuilderRating {
	return BuilderRating{}
}

// HasVoted prepares an aggregate where the local user has voted value among votes in total.
// The other votes are assumed to have been fives.
func (b BuilderRating) HasVoted(value, votes int) BuilderRating {
	b.r = rating.Aggregate{
		TotalScore: value + (votes-1)*5,
		TotalVotes: votes,
		MyRating:   value,
	}

	return b
}

func (b BuilderRating) Build() rating.Aggregate {
	return b.r
}
