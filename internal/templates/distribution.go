package templates

import "sort"

// QuestionType names one of the three kinds of quiz question.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeShortAnswer    QuestionType = "short_answer"
)

// AllQuestionTypes returns the question types in distribution order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer}
}

// QuestionCounts is the number of questions of each type in a quiz.
type QuestionCounts map[QuestionType]int

// Total returns the number of questions across all types.
func (c QuestionCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Percent returns the percentage assigned to qt.
func (d QuestionTypeDistribution) Percent(qt QuestionType) int {
	switch qt {
	case TypeMultipleChoice:
		return d.MultipleChoice
	case TypeTrueFalse:
		return d.TrueFalse
	case TypeShortAnswer:
		return d.ShortAnswer
	default:
		return 0
	}
}

// Split divides n questions across the question types in proportion to
// the distribution. Counts always sum to n. Leftover questions go to the
// types with the largest fractional share; ties follow AllQuestionTypes order.
func (d QuestionTypeDistribution) Split(n int) QuestionCounts {
	counts := make(QuestionCounts, 3)
	if n <= 0 {
		for _, qt := range AllQuestionTypes() {
			counts[qt] = 0
		}
		return counts
	}

	type share struct {
		qt        QuestionType
		remainder int
	}
	shares := make([]share, 0, 3)

	assigned := 0
	for _, qt := range AllQuestionTypes() {
		scaled := n * d.Percent(qt)
		counts[qt] = scaled / 100
		assigned += counts[qt]
		shares = append(shares, share{qt: qt, remainder: scaled % 100})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; assigned < n; i++ {
		counts[shares[i%len(shares)].qt]++
		assigned++
	}
	return counts
}
