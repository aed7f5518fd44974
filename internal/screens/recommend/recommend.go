// Package recommend lets the user type a filename and see which
// templates would be suggested for it.
package recommend

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/router"
	"github.com/abhisek/quizwise/internal/screen"
	"github.com/abhisek/quizwise/internal/screens/preview"
	"github.com/abhisek/quizwise/internal/templates"
	"github.com/abhisek/quizwise/internal/ui/components"
	"github.com/abhisek/quizwise/internal/ui/icons"
	"github.com/abhisek/quizwise/internal/ui/layout"
	"github.com/abhisek/quizwise/internal/ui/theme"
)

type Screen struct {
	rec       *recommend.Recommender
	questions int
	input     components.TextInput
	match     recommend.Match
	results   []*templates.QuizTemplate
	selected  int
}

var (
	_ screen.Screen        = (*Screen)(nil)
	_ screen.InputCapturer = (*Screen)(nil)
)

func New(rec *recommend.Recommender, questions int) *Screen {
	s := &Screen{
		rec:       rec,
		questions: questions,
		input:     components.NewTextInput("quarterly-report.pdf", 255),
	}
	s.refresh()
	return s
}

func (s *Screen) Init() tea.Cmd { return s.input.Init() }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			s.selected = max(s.selected-1, 0)
			return s, nil
		case "down", "tab":
			s.selected = min(s.selected+1, len(s.results)-1)
			return s, nil
		case "enter":
			id := s.results[s.selected].ID
			return s, router.Push(preview.New(s.rec.Catalog(), id, s.questions))
		}
	}

	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refresh()
	}
	return s, cmd
}

func (s *Screen) refresh() {
	name := s.input.Value()
	s.match = s.rec.Classify(name)
	s.results = s.rec.Templates(s.match)
	s.selected = 0
}

func (s *Screen) View(width, height int) string {
	s.input.SetWidth(max(width-10, 20))

	var b strings.Builder
	b.WriteString(theme.Label.Render("  Document filename"))
	b.WriteString("\n  ")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.input.Value() == "":
		b.WriteString(theme.Hint.Render("  Type a filename to see suggested templates."))
	case s.match.Matched():
		b.WriteString(theme.Body.Render("  Matched "))
		b.WriteString(theme.Matched.Render(fmt.Sprintf("%q", s.match.Keyword)))
	default:
		b.WriteString(theme.Hint.Render("  No keyword matched; the general template applies."))
	}
	b.WriteString("\n\n")

	for i, t := range s.results {
		style := theme.Card
		if i == s.selected {
			style = theme.SelectedCard
		}
		card := icons.Render(t.Icon) + "  " + theme.Title.Render(t.Name) + "\n" +
			theme.Subtitle.Render(t.Description)
		b.WriteString(style.Width(max(width-4, 20)).Render(card))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) Title() string { return "Recommend" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Preview"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput is always true: every printable key goes to the input.
func (s *Screen) CapturingInput() bool { return true }

// Results returns the current recommendations, primary first.
func (s *Screen) Results() []*templates.QuizTemplate { return s.results }
