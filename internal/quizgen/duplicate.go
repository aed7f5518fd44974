package quizgen

import "fmt"

// DuplicateValidator rejects quizzes that ask the same question twice.
// Questions are compared after lower-casing and collapsing whitespace.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *Quiz, _ GenerateInput) *ValidationError {
	seen := make(map[string]int, len(q.Questions))
	for i, question := range q.Questions {
		key := normalize(question.Text)
		if prev, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats question %d", i+1, prev+1),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}
