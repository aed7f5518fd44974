package quizgen

import "github.com/abhisek/quizwise/internal/templates"

// Quiz is a generated, validated quiz.
type Quiz struct {
	Title      string
	TemplateID string
	Questions  []Question
}

// Counts returns the number of questions of each type.
func (q *Quiz) Counts() templates.QuestionCounts {
	counts := make(templates.QuestionCounts, len(templates.AllQuestionTypes()))
	for _, qt := range templates.AllQuestionTypes() {
		counts[qt] = 0
	}
	for _, question := range q.Questions {
		counts[question.Type]++
	}
	return counts
}

// Question is one generated quiz question.
type Question struct {
	Type templates.QuestionType

	// Text is the question prompt.
	Text string

	// Choices holds exactly 4 options for multiple choice questions and
	// is empty otherwise.
	Choices []string

	// Answer is the correct answer. For multiple choice it is the text of
	// the correct option; for true/false it is "true" or "false"; for
	// short answer it is a model answer.
	Answer string

	// Explanation justifies the answer with reference to the document.
	Explanation string

	// FocusArea is the template focus area the question targets.
	FocusArea string
}

// GenerateInput holds everything needed to generate one quiz.
type GenerateInput struct {
	Template *templates.QuizTemplate

	// DocumentName is the original filename, shown to the model as context.
	DocumentName string

	// Content is the document text the questions are drawn from.
	Content string

	// QuestionCount is the total number of questions; the template's
	// distribution decides how many of each type.
	QuestionCount int
}
