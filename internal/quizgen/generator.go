package quizgen

import "context"

// Generator produces quizzes from document text.
type Generator interface {
	// Generate returns a quiz that passed every configured validator.
	Generate(ctx context.Context, input GenerateInput) (*Quiz, error)
}
