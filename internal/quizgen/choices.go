package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizwise/internal/templates"
)

// ChoiceCount is the number of options on a multiple choice question.
const ChoiceCount = 4

// ChoicesValidator checks choices and answers against the question type.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(q *Quiz, _ GenerateInput) *ValidationError {
	for i, question := range q.Questions {
		if msg := checkChoices(question); msg != "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: %s", i+1, msg),
				Retryable: true,
			}
		}
	}
	return nil
}

func checkChoices(q Question) string {
	switch q.Type {
	case templates.TypeMultipleChoice:
		if len(q.Choices) != ChoiceCount {
			return fmt.Sprintf("multiple choice needs %d choices, got %d", ChoiceCount, len(q.Choices))
		}
		seen := make(map[string]bool, len(q.Choices))
		found := false
		for _, c := range q.Choices {
			key := normalize(c)
			if key == "" {
				return "choice is empty"
			}
			if seen[key] {
				return fmt.Sprintf("duplicate choice %q", c)
			}
			seen[key] = true
			if key == normalize(q.Answer) {
				found = true
			}
		}
		if !found {
			return fmt.Sprintf("answer %q is not one of the choices", q.Answer)
		}
	case templates.TypeTrueFalse:
		if len(q.Choices) != 0 {
			return "true/false must not have choices"
		}
		if q.Answer != "true" && q.Answer != "false" {
			return fmt.Sprintf("true/false answer must be \"true\" or \"false\", got %q", q.Answer)
		}
	case templates.TypeShortAnswer:
		if len(q.Choices) != 0 {
			return "short answer must not have choices"
		}
	}
	return ""
}

// normalize lower-cases s and collapses internal whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
