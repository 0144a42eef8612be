package reviewing

import "context"

type Storage interface {
	// Load returns the stored reviews, most recently submitted first. Nothing stored is an empty list.
	Load(ctx context.Context) ([]Review, error)

	// Save replaces everything stored with reviews.
	Save(ctx context.Context, reviews []Review) error
}

// Confirmer asks the user before something destructive happens.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc lets a plain function be a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}
