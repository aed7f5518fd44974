// Package preview shows one quiz template in full.
package preview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizwise/internal/screen"
	"github.com/abhisek/quizwise/internal/templates"
	"github.com/abhisek/quizwise/internal/ui/components"
	"github.com/abhisek/quizwise/internal/ui/icons"
	"github.com/abhisek/quizwise/internal/ui/layout"
	"github.com/abhisek/quizwise/internal/ui/theme"
)

const (
	DefaultQuestions = 10
	maxQuestions     = 50
)

// Screen renders a template's details and previews how a quiz of a
// chosen length would be split across question types.
type Screen struct {
	id       string
	tmpl     *templates.QuizTemplate
	count    int
	scroll   int
	maxLines int
}

var _ screen.Screen = (*Screen)(nil)

// New looks up id in catalog and starts the preview at questions, clamped
// to 1..50. Zero selects DefaultQuestions. An unknown id renders a
// not-found message.
func New(catalog *templates.Catalog, id string, questions int) *Screen {
	if questions == 0 {
		questions = DefaultQuestions
	}
	return &Screen{id: id, tmpl: catalog.ByID(id), count: min(max(questions, 1), maxQuestions)}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "+", "=", "right", "l":
		s.count = min(s.count+1, maxQuestions)
	case "-", "left", "h":
		s.count = max(s.count-1, 1)
	case "down", "j":
		s.scroll++
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	}
	return s, nil
}

func (s *Screen) Title() string {
	if s.tmpl == nil {
		return "Template"
	}
	return s.tmpl.Name
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Questions"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Count returns the number of questions being previewed.
func (s *Screen) Count() int { return s.count }

func (s *Screen) View(width, height int) string {
	if s.tmpl == nil {
		return theme.Warning.Render(fmt.Sprintf("  Template %q not found.", s.id))
	}

	lines := strings.Split(s.render(width-4), "\n")
	s.scroll = min(s.scroll, max(len(lines)-height, 0))
	end := min(s.scroll+height, len(lines))
	return strings.Join(lines[s.scroll:end], "\n")
}

func (s *Screen) render(width int) string {
	t := s.tmpl
	wrap := lipgloss.NewStyle().Width(width).PaddingLeft(2)
	var b strings.Builder

	b.WriteString(wrap.Render(icons.Render(t.Icon) + "  " + theme.Title.Render(t.Name)))
	b.WriteString("\n")
	b.WriteString(wrap.Render(theme.Subtitle.Render(t.Description)))
	b.WriteString("\n\n")

	section := func(title string) {
		b.WriteString(wrap.Render(theme.Label.Render(title)))
		b.WriteString("\n")
	}

	section("Question mix")
	b.WriteString(wrap.Render(components.DistributionBars(t.QuestionTypes, width-2)))
	b.WriteString("\n")
	b.WriteString(wrap.Render(theme.Hint.Render(fmt.Sprintf("%d questions: %s", s.count, components.SplitSummary(t.QuestionTypes, s.count)))))
	b.WriteString("\n\n")

	section("Focus areas")
	for _, fa := range t.FocusAreas {
		b.WriteString(wrap.Render(theme.Body.Render("• " + fa)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section("Example questions")
	for _, q := range t.ExampleQuestions {
		b.WriteString(wrap.Render(theme.Body.Render("“" + q + "”")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section("Guidance")
	b.WriteString(wrap.Render(theme.Body.Render(t.PromptModifier)))
	b.WriteString("\n\n")

	switch {
	case t.ID == templates.FallbackID:
		section("Suits documents about")
		b.WriteString(wrap.Render(theme.Subtitle.Render("Any file no other template matches, e.g. " + strings.Join(t.DocumentTypes, ", "))))
	case len(t.DocumentTypes) > 0:
		section("Suits documents about")
		b.WriteString(wrap.Render(theme.Subtitle.Render(strings.Join(t.DocumentTypes, ", "))))
	}

	return b.String()
}
