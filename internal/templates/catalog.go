package templates

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Catalog is an immutable registry of quiz templates.
// It is safe for concurrent use. Returned templates are shared and must
// not be modified.
type Catalog struct {
	templates []*QuizTemplate
	byID      map[string]*QuizTemplate
	fallback  *QuizTemplate
}

// NewCatalog builds a catalog from templates, preserving their order.
// The input is copied, so later changes to it do not affect the catalog.
func NewCatalog(templates []QuizTemplate) (*Catalog, error) {
	if err := validateTemplates(templates); err != nil {
		return nil, err
	}

	c := &Catalog{
		templates: make([]*QuizTemplate, len(templates)),
		byID:      make(map[string]*QuizTemplate, len(templates)),
	}
	for i := range templates {
		t := cloneTemplate(templates[i])
		c.templates[i] = t
		c.byID[t.ID] = t
	}
	c.fallback = c.byID[FallbackID]
	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on invalid input.
func MustNewCatalog(templates []QuizTemplate) *Catalog {
	c, err := NewCatalog(templates)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustNewCatalog(seedTemplates)
	})
	return defaultCatalog
}

// All returns every template in registration order.
func (c *Catalog) All() []*QuizTemplate {
	return slices.Clone(c.templates)
}

// ByID returns the template with the given id, or nil if there is none.
// Matching is exact and case-sensitive.
func (c *Catalog) ByID(id string) *QuizTemplate {
	return c.byID[id]
}

// Fallback returns the general-purpose template.
func (c *Catalog) Fallback() *QuizTemplate {
	return c.fallback
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// validateTemplates returns a combined error describing every problem
// found, or nil if the set is valid.
func validateTemplates(templates []QuizTemplate) error {
	var errs []string

	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("template %q has an empty id", t.Name))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate template id: %q", t.ID))
		}
		seen[t.ID] = true

		if err := t.QuestionTypes.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("template %q: %v", t.ID, err))
		}
	}

	if !seen[FallbackID] {
		errs = append(errs, fmt.Sprintf("catalog is missing the %q fallback template", FallbackID))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid template catalog:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func cloneTemplate(t QuizTemplate) *QuizTemplate {
	t.DocumentTypes = slices.Clone(t.DocumentTypes)
	t.FocusAreas = slices.Clone(t.FocusAreas)
	t.ExampleQuestions = slices.Clone(t.ExampleQuestions)
	return &t
}
