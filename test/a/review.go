// Package a happily stolen from Working Effectively with Unit Tests.
package a

import (
	"time"

	"github.com/gaqzi/star-reviews/internal/reviewing"
)

type BuilderReview struct {
	r reviewing.Review
}

// Review prepares a reviewing.Review that is valid by default but allows for customization.
func Review() BuilderReview {
	return BuilderReview{}.IsValid()
}

// Build returns the prepared reviewing.Review.
func (b BuilderReview) Build() reviewing.Review {
	return b.r
}

// IsValid prepares a reviewing.Review as it looks after being submitted.
func (b BuilderReview) IsValid() BuilderReview {
	b.r.ID = "0193dd86-b07e-7e73-a77e-724bee1fa176" // UUIDv7, just a value, no particular meaning
	b.r.Name = "Alice"
	b.r.Comment = "Clean rooms and a friendly staff"
	b.r.Stars = 4
	b.r.CreatedAt = Timestamp()

	return b
}

// WithID prepares the reviewing.Review with the passed in id.
func (b BuilderReview) WithID(id string) BuilderReview {
	b.r.ID = id

	return b
}

func (b BuilderReview) WithName(name string) BuilderReview {
	b.r.Name = name

	return b
}

func (b BuilderReview) WithStars(stars int) BuilderReview {
	b.r.Stars = stars

	return b
}

// CreatedAfter makes the review d newer than the default timestamp.
func (b BuilderReview) CreatedAfter(d time.Duration) BuilderReview {
	b.r.CreatedAt = Timestamp().Add(d)

	return b
}

// Modify allows you to specify a custom override while preparing.
// Note: consider naming your pattern and adding it to the builder.
func (b BuilderReview) Modify(mods ...func(r *reviewing.Review)) BuilderReview {
	for _, mod := range mods {
		mod(&b.r)
	}

	return b
}

type BuilderSubmission struct {
	s reviewing.Submission
}

// Submission prepares a reviewing.Submission that passes validation.
func Submission() BuilderSubmission {
	return BuilderSubmission{s: reviewing.Submission{
		Name:    "Alice",
		Comment: "Clean rooms and a friendly staff",
		Stars:   5,
	}}
}

func (b BuilderSubmission) WithName(name string) BuilderSubmission {
	b.s.Name = name

	return b
}

func (b BuilderSubmission) WithComment(comment string) BuilderSubmission {
	b.s.Comment = comment

	return b
}

func (b BuilderSubmission) WithStars(stars int) BuilderSubmission {
	b.s.Stars = stars

	return b
}

func (b BuilderSubmission) Build() reviewing.Submission {
	return b.s
}
