package catalog

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizwise/internal/router"
	"github.com/abhisek/quizwise/internal/screens/preview"
	"github.com/abhisek/quizwise/internal/templates"
)

func TestView_ListsAllTemplatesInOrder(t *testing.T) {
	s := New(templates.Default(), 0)
	out := s.View(120, 40)

	last := -1
	for _, tmpl := range templates.Default().All() {
		i := strings.Index(out, tmpl.Name)
		if i < 0 {
			t.Fatalf("view missing %q", tmpl.Name)
		}
		if i < last {
			t.Errorf("%q rendered out of catalog order", tmpl.Name)
		}
		last = i
	}
	if s.Status() != "5 templates" {
		t.Errorf("status = %q", s.Status())
	}
}

func TestUpdate_EnterPushesPreview(t *testing.T) {
	s := New(templates.Default(), 0)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := s.Selected().ID; got != "technical" {
		t.Fatalf("selected = %q, want technical", got)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	p, ok := push.Screen.(*preview.Screen)
	if !ok {
		t.Fatalf("pushed %T, want *preview.Screen", push.Screen)
	}
	if p.Title() != "Technical Documentation" {
		t.Errorf("preview title = %q", p.Title())
	}
}
