package recommend

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/quizwise/internal/templates"
)

// Rule maps filename keywords to a template. A rule matches when any
// keyword is a substring of the lower-cased filename.
type Rule struct {
	TemplateID string
	Keywords   []string
}

// matchKeyword returns the first keyword contained in name, or "".
func (r Rule) matchKeyword(name string) string {
	for _, kw := range r.Keywords {
		if strings.Contains(name, kw) {
			return kw
		}
	}
	return ""
}

// DefaultPriority is the order the built-in templates are tried in.
// Academic outranks technical, which outranks business, then narrative.
var DefaultPriority = []string{"academic", "technical", "business", "narrative"}

// RulesFromCatalog builds one rule per id, in the given order, using each
// template's DocumentTypes as its keywords. An id missing from catalog
// yields a rule with no keywords, which New rejects.
func RulesFromCatalog(catalog *templates.Catalog, priority ...string) []Rule {
	rules := make([]Rule, 0, len(priority))
	for _, id := range priority {
		r := Rule{TemplateID: id}
		if t := catalog.ByID(id); t != nil {
			r.Keywords = slices.Clone(t.DocumentTypes)
		}
		rules = append(rules, r)
	}
	return rules
}

// DefaultRules returns the built-in catalog's rules in DefaultPriority order.
func DefaultRules() []Rule {
	return RulesFromCatalog(templates.Default(), DefaultPriority...)
}

// Match describes how a filename was classified.
type Match struct {
	// TemplateID is the primary template: a rule's template, or the
	// fallback when nothing matched.
	TemplateID string

	// Keyword is the keyword that matched. Empty for the fallback.
	Keyword string

	// Rule is the index of the matching rule, or -1 for the fallback.
	Rule int
}

// Matched reports whether a rule matched.
func (m Match) Matched() bool { return m.Rule >= 0 }

// Recommender suggests quiz templates for a document based on its filename.
// It holds no mutable state and is safe for concurrent use.
type Recommender struct {
	catalog *templates.Catalog
	rules   []Rule
}

// New creates a Recommender over catalog using rules in the given order.
// Every rule must reference a template in the catalog other than the fallback.
func New(catalog *templates.Catalog, rules []Rule) (*Recommender, error) {
	if catalog == nil {
		return nil, fmt.Errorf("recommender requires a catalog")
	}

	var errs []string
	owned := make([]Rule, len(rules))
	for i, r := range rules {
		switch {
		case r.TemplateID == templates.FallbackID:
			errs = append(errs, fmt.Sprintf("rule %d targets the fallback template", i))
		case catalog.ByID(r.TemplateID) == nil:
			errs = append(errs, fmt.Sprintf("rule %d references unknown template %q", i, r.TemplateID))
		case len(r.Keywords) == 0:
			errs = append(errs, fmt.Sprintf("rule %d (%s) has no keywords", i, r.TemplateID))
		}

		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				errs = append(errs, fmt.Sprintf("rule %d (%s) has an empty keyword", i, r.TemplateID))
				continue
			}
			kws = append(kws, kw)
		}
		owned[i] = Rule{TemplateID: r.TemplateID, Keywords: kws}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid recommendation rules:\n  %s", strings.Join(errs, "\n  "))
	}

	return &Recommender{catalog: catalog, rules: owned}, nil
}

// NewDefault returns a Recommender over the built-in catalog and rules.
func NewDefault() *Recommender {
	cat := templates.Default()
	r, err := New(cat, RulesFromCatalog(cat, DefaultPriority...))
	if err != nil {
		panic(err)
	}
	return r
}

// Classify evaluates the rules in order and returns the first match.
// Filenames are compared case-insensitively.
func (r *Recommender) Classify(filename string) Match {
	name := strings.ToLower(filename)
	if name != "" {
		for i, rule := range r.rules {
			if kw := rule.matchKeyword(name); kw != "" {
				return Match{TemplateID: rule.TemplateID, Keyword: kw, Rule: i}
			}
		}
	}
	return Match{TemplateID: templates.FallbackID, Rule: -1}
}

// Recommend returns templates for filename, most relevant first.
// The result is [primary, general] when a rule matches and [general]
// otherwise. It is never empty.
func (r *Recommender) Recommend(filename string) []*templates.QuizTemplate {
	return r.Templates(r.Classify(filename))
}

// Templates returns the recommendation list for a match made by Classify:
// [primary, general] when it matched and [general] otherwise.
func (r *Recommender) Templates(m Match) []*templates.QuizTemplate {
	fallback := r.catalog.Fallback()
	if !m.Matched() {
		return []*templates.QuizTemplate{fallback}
	}
	return []*templates.QuizTemplate{r.catalog.ByID(m.TemplateID), fallback}
}

// Catalog returns the catalog recommendations are drawn from.
func (r *Recommender) Catalog() *templates.Catalog {
	return r.catalog
}
