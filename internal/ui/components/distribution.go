package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizwise/internal/templates"
	"github.com/abhisek/quizwise/internal/ui/theme"
)

// TypeLabel returns the display name of a question type.
func TypeLabel(qt templates.QuestionType) string {
	switch qt {
	case templates.TypeMultipleChoice:
		return "Multiple choice"
	case templates.TypeTrueFalse:
		return "True / false"
	case templates.TypeShortAnswer:
		return "Short answer"
	}
	return string(qt)
}

func typeColor(qt templates.QuestionType) color.Color {
	switch qt {
	case templates.TypeTrueFalse:
		return theme.TrueFalse
	case templates.TypeShortAnswer:
		return theme.ShortAnswer
	}
	return theme.MultipleChoice
}

// DistributionBars renders one labelled bar per question type, scaled
// so that 100% fills width columns including label and percentage.
func DistributionBars(d templates.QuestionTypeDistribution, width int) string {
	const labelWidth = 17
	const pctWidth = 6

	barWidth := width - labelWidth - pctWidth
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for _, qt := range templates.AllQuestionTypes() {
		pct := d.Percent(qt)
		filled := barWidth * pct / 100
		label := lipgloss.NewStyle().Foreground(theme.Text).Width(labelWidth).Render(TypeLabel(qt))
		bar := lipgloss.NewStyle().Foreground(typeColor(qt)).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
		value := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%5d%%", pct))
		lines = append(lines, label+bar+value)
	}
	return strings.Join(lines, "\n")
}

// SplitSummary renders how n questions divide across types,
// e.g. "6 multiple choice · 2 true/false · 2 short answer".
func SplitSummary(d templates.QuestionTypeDistribution, n int) string {
	counts := d.Split(n)
	var parts []string
	for _, qt := range templates.AllQuestionTypes() {
		if c := counts[qt]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, strings.ToLower(TypeLabel(qt))))
		}
	}
	if len(parts) == 0 {
		return "no questions"
	}
	return strings.Join(parts, " · ")
}
