package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizwise/internal/templates"
)

const systemPrompt = `You write quizzes that test how well a reader understood a document.

Rules:
- Every question must be answerable from the document alone. Do not rely on outside knowledge.
- Produce exactly the number of questions of each type that is requested.
- multiple_choice: exactly 4 distinct options, one correct. The answer is the exact text of the correct option. Distractors should be plausible misreadings of the document, not jokes.
- true_false: the answer is "true" or "false" and choices is an empty array. Avoid trick wording and double negatives.
- short_answer: the answer is a concise model answer of one or two sentences and choices is an empty array.
- The explanation says why the answer is correct and points to the relevant part of the document.
- focus_area names one of the listed focus areas.
- Do not repeat a question or ask the same fact twice.`

// buildUserMessage constructs the user message for one quiz request.
func buildUserMessage(input GenerateInput, counts templates.QuestionCounts, cfg Config) string {
	t := input.Template
	var b strings.Builder

	fmt.Fprintf(&b, "Quiz style: %s\n", t.Name)
	fmt.Fprintf(&b, "Style description: %s\n", t.Description)
	fmt.Fprintf(&b, "Instructions: %s\n", t.PromptModifier)

	b.WriteString("\nFocus areas:\n")
	for _, fa := range t.FocusAreas {
		fmt.Fprintf(&b, "- %s\n", fa)
	}

	if len(t.ExampleQuestions) > 0 {
		b.WriteString("\nExample questions in this style:\n")
		for _, q := range t.ExampleQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	fmt.Fprintf(&b, "\nQuestions required (%d total):\n", counts.Total())
	for _, qt := range templates.AllQuestionTypes() {
		if n := counts[qt]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", qt, n)
		}
	}

	fmt.Fprintf(&b, "\nDocument: %s\n", input.DocumentName)
	b.WriteString("<document>\n")
	b.WriteString(truncateContent(input.Content, cfg.MaxContentChars))
	b.WriteString("\n</document>")

	return b.String()
}

// truncateContent cuts content to at most max bytes on a line boundary
// where possible. max <= 0 disables truncation.
func truncateContent(content string, max int) string {
	content = strings.TrimSpace(content)
	if max <= 0 || len(content) <= max {
		return content
	}
	cut := content[:max]
	if i := strings.LastIndexByte(cut, '\n'); i > max/2 {
		cut = cut[:i]
	}
	return strings.ToValidUTF8(cut, "") + "\n[document truncated]"
}
