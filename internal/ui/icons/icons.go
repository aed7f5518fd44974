// Package icons maps template icons to terminal glyphs.
package icons

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizwise/internal/templates"
)

// Glyph returns the symbol and color for icon. Unknown icons fall back
// to the sparkles glyph.
func Glyph(icon templates.Icon) (string, color.Color) {
	switch icon {
	case templates.IconSparkles:
		return "✦", lipgloss.Color("#A78BFA")
	case templates.IconGraduationCap:
		return "🎓", lipgloss.Color("#60A5FA")
	case templates.IconCode:
		return "</>", lipgloss.Color("#34D399")
	case templates.IconBriefcase:
		return "💼", lipgloss.Color("#FBBF24")
	case templates.IconBookOpen:
		return "📖", lipgloss.Color("#F472B6")
	}
	return "✦", lipgloss.Color("#A78BFA")
}

// Render returns the styled glyph for icon.
func Render(icon templates.Icon) string {
	glyph, c := Glyph(icon)
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(glyph)
}
