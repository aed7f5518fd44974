package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/router"
	"github.com/abhisek/quizwise/internal/screen"
	"github.com/abhisek/quizwise/internal/screens/catalog"
	recscreen "github.com/abhisek/quizwise/internal/screens/recommend"
	"github.com/abhisek/quizwise/internal/templates"
	"github.com/abhisek/quizwise/internal/ui/components"
	"github.com/abhisek/quizwise/internal/ui/icons"
	"github.com/abhisek/quizwise/internal/ui/layout"
	"github.com/abhisek/quizwise/internal/ui/theme"
)

// HomeScreen is the root screen of the application.
type HomeScreen struct {
	catalog *templates.Catalog
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen over the given catalog and recommender.
// Template previews start at questions questions.
func New(cat *templates.Catalog, rec *recommend.Recommender, questions int) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Browse templates", Detail: "question mix, focus areas, examples", Action: func() tea.Cmd {
			return router.Push(catalog.New(cat, questions))
		}},
		{Label: "Recommend for a file", Detail: "suggest templates from a filename", Action: func() tea.Cmd {
			return router.Push(recscreen.New(rec, questions))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{catalog: cat, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var icon strings.Builder
	for _, t := range h.catalog.All() {
		icon.WriteString(icons.Render(t.Icon) + "  ")
	}

	sections := []string{
		theme.Title.Render("Turn any document into a quiz"),
		theme.Subtitle.Render("Templates shape the questions for the kind of document you have."),
		icon.String(),
		h.menu.View(),
	}
	if !layout.IsCompact(width) {
		sections = append(sections, theme.Hint.Render("Tip: `quizwise serve` exposes the same catalog over HTTP."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() string {
	return fmt.Sprintf("%d templates", h.catalog.Len())
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}
