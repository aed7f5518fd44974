package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizwise/internal/templates"
)

// DistributionValidator checks that the mix of question types matches
// the template's distribution for the requested question count.
type DistributionValidator struct{}

func (v *DistributionValidator) Name() string { return "distribution" }

func (v *DistributionValidator) Validate(q *Quiz, input GenerateInput) *ValidationError {
	want := input.Template.QuestionTypes.Split(input.QuestionCount)
	got := q.Counts()

	var diffs []string
	for _, qt := range templates.AllQuestionTypes() {
		if got[qt] != want[qt] {
			diffs = append(diffs, fmt.Sprintf("%s: want %d, got %d", qt, want[qt], got[qt]))
		}
	}
	if len(diffs) == 0 {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   "question type mix does not match template (" + strings.Join(diffs, "; ") + ")",
		Retryable: true,
	}
}
