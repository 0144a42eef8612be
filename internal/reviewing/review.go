package reviewing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaqzi/star-reviews/internal/platform/display"
	"github.com/gaqzi/star-reviews/internal/platform/validate"
)

const (
	MinStars = 1
	MaxStars = 5

	// MinCommentLength is counted in UTF-16 code units after trimming.
	MinCommentLength = 10
)

// Review is immutable once created, the only thing that can happen to it is deletion.
type Review struct {
	ID        string
	Name      string
	Comment   string
	Stars     int
	CreatedAt time.Time
}

// ClampedStars is the star value used when aggregating, stored data may be out of range.
func (r Review) ClampedStars() int {
	return display.Clamp(r.Stars, MinStars, MaxStars)
}

// Submission is what the author filled in, before it has become a Review.
type Submission struct {
	Name    string `validate:"required"`
	// Counted in UTF-16 code units, the same length the browser widget checks.
	Comment string `validate:"utf16min=10"`
	Stars   int    `validate:"min=1,max=5"`
}

// Normalize trims the free text fields.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Comment = strings.TrimSpace(s.Comment)

	return s
}

// Validate normalizes the submission and returns a *ValidationError for the first rule it breaks,
// checked in the order name, comment, stars.
func (s Submission) Validate(ctx context.Context) (Submission, error) {
	s = s.Normalize()

	failures := validate.Failures(validate.Struct(ctx, s))
	if len(failures) == 0 {
		return s, nil
	}

	switch failures[0].Field {
	case "Name":
		return s, &ValidationError{Reason: EmptyName}
	case "Comment":
		return s, &ValidationError{Reason: CommentTooShort}
	default:
		return s, &ValidationError{Reason: StarsOutOfRange}
	}
}

// Reason is why a submission was rejected.
type Reason string

const (
	EmptyName       Reason = "EmptyName"
	CommentTooShort Reason = "CommentTooShort"
	StarsOutOfRange Reason = "StarsOutOfRange"
)

var reasonMessages = map[Reason]string{
	EmptyName:       "Escribe tu nombre.",
	CommentTooShort: fmt.Sprintf("El comentario debe tener mínimo %d caracteres.", MinCommentLength),
	StarsOutOfRange: fmt.Sprintf("Elige entre %d y %d estrellas.", MinStars, MaxStars),
}

// ValidationError rejects a submission without anything having changed.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return "invalid review: " + string(e.Reason)
}

// Message is the text to show the author.
func (e *ValidationError) Message() string {
	return reasonMessages[e.Reason]
}

// WriteError means the change happened in memory but couldn't be persisted.
// It's a warning, the session carries on with the in-memory state.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to persist reviews: %s", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
