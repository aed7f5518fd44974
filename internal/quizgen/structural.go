package quizgen

import (
	"fmt"
	"slices"

	"github.com/abhisek/quizwise/internal/templates"
)

const (
	maxTextLen        = 500
	maxExplanationLen = 1000
	maxAnswerLen      = 500
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, input GenerateInput) *ValidationError {
	if len(q.Questions) == 0 {
		return v.fail("quiz has no questions")
	}
	if len(q.Questions) != input.QuestionCount {
		return v.fail(fmt.Sprintf("expected %d questions, got %d", input.QuestionCount, len(q.Questions)))
	}

	for i, question := range q.Questions {
		n := i + 1
		switch {
		case !slices.Contains(templates.AllQuestionTypes(), question.Type):
			return v.fail(fmt.Sprintf("question %d has unknown type %q", n, question.Type))
		case question.Text == "":
			return v.fail(fmt.Sprintf("question %d text is empty", n))
		case len(question.Text) > maxTextLen:
			return v.fail(fmt.Sprintf("question %d text exceeds %d characters", n, maxTextLen))
		case question.Answer == "":
			return v.fail(fmt.Sprintf("question %d answer is empty", n))
		case len(question.Answer) > maxAnswerLen:
			return v.fail(fmt.Sprintf("question %d answer exceeds %d characters", n, maxAnswerLen))
		case question.Explanation == "":
			return v.fail(fmt.Sprintf("question %d explanation is empty", n))
		case len(question.Explanation) > maxExplanationLen:
			return v.fail(fmt.Sprintf("question %d explanation exceeds %d characters", n, maxExplanationLen))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
