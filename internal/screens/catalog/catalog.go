// Package catalog lists every quiz template.
package catalog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

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
	catalog *templates.Catalog
	menu    components.Menu
}

var _ screen.Screen = (*Screen)(nil)

// New lists every template in catalog. Opening one previews a quiz of
// questions questions.
func New(catalog *templates.Catalog, questions int) *Screen {
	var items []components.MenuItem
	for _, t := range catalog.All() {
		id := t.ID
		items = append(items, components.MenuItem{
			Label:  icons.Render(t.Icon) + "  " + t.Name,
			Detail: t.Description,
			Action: func() tea.Cmd {
				return router.Push(preview.New(catalog, id, questions))
			},
		})
	}
	return &Screen{catalog: catalog, menu: components.NewMenu(items)}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("  Pick a template to see its question mix and focus areas."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	return b.String()
}

func (s *Screen) Title() string { return "Templates" }

func (s *Screen) Status() string {
	return fmt.Sprintf("%d templates", s.catalog.Len())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Preview"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the template under the cursor.
func (s *Screen) Selected() *templates.QuizTemplate {
	return s.catalog.All()[s.menu.Selected]
}
