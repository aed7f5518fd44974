package recommend

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/quizwise/internal/templates"
)

func ids(ts []*templates.QuizTemplate) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestRecommend_PrimaryByCategory(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		filename string
		want     string
	}{
		{"research-paper.pdf", "academic"},
		{"thesis-draft.pdf", "academic"},
		{"Scientific_Paper_v2.pdf", "academic"},
		{"my-dissertation.docx", "academic"},
		{"technical-specification.pdf", "technical"},
		{"api-documentation.md", "technical"},
		{"user-manual.pdf", "technical"},
		{"business-plan.pdf", "business"},
		{"quarterly-report.docx", "business"},
		{"market-proposal.pdf", "business"},
		{"short-story.pdf", "narrative"},
		{"novel-chapter.pdf", "narrative"},
		{"literature-essay.txt", "narrative"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := r.Recommend(tt.filename)
			if len(got) != 2 {
				t.Fatalf("Recommend(%q) = %v, want 2 templates", tt.filename, ids(got))
			}
			if got[0].ID != tt.want {
				t.Errorf("Recommend(%q)[0] = %q, want %q", tt.filename, got[0].ID, tt.want)
			}
			if got[1].ID != templates.FallbackID {
				t.Errorf("Recommend(%q)[1] = %q, want %q", tt.filename, got[1].ID, templates.FallbackID)
			}
		})
	}
}

func TestRecommend_GenericFallsBackToGeneralOnly(t *testing.T) {
	r := NewDefault()

	for _, filename := range []string{"document.pdf", "untitled.docx", "", "IMG_0042.png", "notes"} {
		got := r.Recommend(filename)
		if len(got) != 1 {
			t.Errorf("Recommend(%q) = %v, want exactly [general]", filename, ids(got))
			continue
		}
		if got[0].ID != templates.FallbackID {
			t.Errorf("Recommend(%q)[0] = %q, want general", filename, got[0].ID)
		}
	}
}

func TestRecommend_CaseInsensitive(t *testing.T) {
	r := NewDefault()

	upper := ids(r.Recommend("RESEARCH-PAPER.PDF"))
	lower := ids(r.Recommend("research-paper.pdf"))
	if strings.Join(upper, ",") != strings.Join(lower, ",") {
		t.Errorf("upper-case result %v differs from lower-case %v", upper, lower)
	}
}

func TestRecommend_PriorityNotMatchCount(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		filename string
		want     string
	}{
		// "story" + "book" are narrative, but "study" is academic and ranks first.
		{"storybook-study.pdf", "academic"},
		// "report" is business, "api" is technical; technical outranks business.
		{"api-report.pdf", "technical"},
		// "financial", "market", "analysis" are all business; "code" is technical.
		{"financial-market-analysis-code.pdf", "technical"},
		// narrative keyword with a longer business match still loses to business.
		{"book-business-proposal.pdf", "business"},
	}

	for _, tt := range tests {
		if got := r.Recommend(tt.filename)[0].ID; got != tt.want {
			t.Errorf("Recommend(%q)[0] = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestRecommend_SubstringMatch(t *testing.T) {
	r := NewDefault()

	// "rapid" contains "api": substring matching is intentional.
	if got := r.Recommend("rapid-notes.txt")[0].ID; got != "technical" {
		t.Errorf("Recommend(rapid-notes.txt)[0] = %q, want technical", got)
	}
}

func TestRecommend_NoDuplicateIDs(t *testing.T) {
	r := NewDefault()

	for _, filename := range []string{"research.pdf", "", "manual", "story"} {
		seen := make(map[string]bool)
		for _, tmpl := range r.Recommend(filename) {
			if seen[tmpl.ID] {
				t.Errorf("Recommend(%q) contains %q twice", filename, tmpl.ID)
			}
			seen[tmpl.ID] = true
		}
	}
}

func TestRecommend_ReturnsCatalogReferences(t *testing.T) {
	r := NewDefault()
	cat := templates.Default()

	got := r.Recommend("thesis.pdf")
	if got[0] != cat.ByID("academic") {
		t.Error("primary recommendation is not the catalog's template")
	}
	if got[1] != cat.Fallback() {
		t.Error("fallback recommendation is not the catalog's template")
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	r := NewDefault()

	for _, filename := range []string{"quarterly-report.docx", "", "random.bin"} {
		a := strings.Join(ids(r.Recommend(filename)), ",")
		b := strings.Join(ids(r.Recommend(filename)), ",")
		if a != b {
			t.Errorf("Recommend(%q) not deterministic: %s vs %s", filename, a, b)
		}
	}
}

func TestRecommend_ConcurrentCallers(t *testing.T) {
	r := NewDefault()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := r.Recommend("api-guide.md")[0].ID; got != "technical" {
					t.Errorf("got %q, want technical", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestClassify(t *testing.T) {
	r := NewDefault()

	m := r.Classify("Quarterly-Report.docx")
	if !m.Matched() {
		t.Fatal("expected a match")
	}
	if m.TemplateID != "business" {
		t.Errorf("template = %q, want business", m.TemplateID)
	}
	if m.Keyword != "report" {
		t.Errorf("keyword = %q, want report", m.Keyword)
	}
	if m.Rule != 2 {
		t.Errorf("rule = %d, want 2", m.Rule)
	}

	none := r.Classify("")
	if none.Matched() {
		t.Error("empty filename should not match")
	}
	if none.TemplateID != templates.FallbackID || none.Keyword != "" || none.Rule != -1 {
		t.Errorf("fallback match = %+v", none)
	}
}

func TestTemplates_FromMatch(t *testing.T) {
	r := NewDefault()

	for _, filename := range []string{"thesis.pdf", "api-report.pdf", "scan.png", ""} {
		m := r.Classify(filename)
		got := strings.Join(ids(r.Templates(m)), ",")
		want := strings.Join(ids(r.Recommend(filename)), ",")
		if got != want {
			t.Errorf("Templates(Classify(%q)) = %s, Recommend = %s", filename, got, want)
		}
		if r.Templates(m)[0].ID != m.TemplateID {
			t.Errorf("%q: primary %q disagrees with match %q", filename, r.Templates(m)[0].ID, m.TemplateID)
		}
	}

	got := ids(r.Templates(Match{TemplateID: "narrative", Keyword: "novel", Rule: 3}))
	if strings.Join(got, ",") != "narrative,general" {
		t.Errorf("got %v, want [narrative general]", got)
	}
}

func TestNew_InvalidRules(t *testing.T) {
	cat := templates.Default()

	tests := []struct {
		name    string
		rules   []Rule
		wantErr string
	}{
		{"unknown template", []Rule{{TemplateID: "poetry", Keywords: []string{"poem"}}}, "unknown template \"poetry\""},
		{"fallback rule", []Rule{{TemplateID: "general", Keywords: []string{"doc"}}}, "targets the fallback"},
		{"no keywords", []Rule{{TemplateID: "academic"}}, "has no keywords"},
		{"empty keyword", []Rule{{TemplateID: "academic", Keywords: []string{""}}}, "empty keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(cat, tt.rules)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}

	if _, err := New(nil, DefaultRules()); err == nil {
		t.Error("expected error for nil catalog")
	}
}

func TestNew_CustomCatalogAndRules(t *testing.T) {
	even := templates.QuestionTypeDistribution{MultipleChoice: 100}
	cat := templates.MustNewCatalog([]templates.QuizTemplate{
		{ID: "legal", Name: "Legal", QuestionTypes: even},
		{ID: templates.FallbackID, Name: "General", QuestionTypes: even},
	})

	r, err := New(cat, []Rule{{TemplateID: "legal", Keywords: []string{"CONTRACT", "NDA"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ids(r.Recommend("Signed-Contract.pdf"))
	if strings.Join(got, ",") != "legal,general" {
		t.Errorf("got %v, want [legal general]", got)
	}
	if got := ids(r.Recommend("research-paper.pdf")); len(got) != 1 || got[0] != "general" {
		t.Errorf("got %v, want [general]", got)
	}
	if r.Catalog() != cat {
		t.Error("Catalog() should return the injected catalog")
	}
}

func TestDefaultRules_FollowCatalogDocumentTypes(t *testing.T) {
	cat := templates.Default()
	rules := DefaultRules()

	if len(rules) != len(DefaultPriority) {
		t.Fatalf("got %d rules, want %d", len(rules), len(DefaultPriority))
	}
	for i, r := range rules {
		if r.TemplateID != DefaultPriority[i] {
			t.Errorf("rule %d = %q, want %q", i, r.TemplateID, DefaultPriority[i])
		}
		if r.TemplateID == templates.FallbackID {
			t.Errorf("rule %d targets the fallback template", i)
		}
		if want := cat.ByID(r.TemplateID).DocumentTypes; !slices.Equal(r.Keywords, want) {
			t.Errorf("rule %s keywords = %v, want %v", r.TemplateID, r.Keywords, want)
		}
	}

	// Every non-fallback template is reachable by some rule.
	for _, tmpl := range cat.All() {
		if tmpl.ID == templates.FallbackID {
			continue
		}
		if !slices.Contains(DefaultPriority, tmpl.ID) {
			t.Errorf("template %q has no rule", tmpl.ID)
		}
	}
}

func TestRulesFromCatalog(t *testing.T) {
	even := templates.QuestionTypeDistribution{MultipleChoice: 100}
	cat := templates.MustNewCatalog([]templates.QuizTemplate{
		{ID: "legal", Name: "Legal", DocumentTypes: []string{"contract", "nda"}, QuestionTypes: even},
		{ID: "medical", Name: "Medical", DocumentTypes: []string{"clinical"}, QuestionTypes: even},
		{ID: templates.FallbackID, Name: "General", QuestionTypes: even},
	})

	rules := RulesFromCatalog(cat, "medical", "legal")
	r, err := New(cat, rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Classify("clinical-contract.pdf"); got.TemplateID != "medical" || got.Keyword != "clinical" {
		t.Errorf("classify = %+v, want medical via clinical", got)
	}

	rules[1].Keywords[0] = "zzz"
	if cat.ByID("legal").DocumentTypes[0] != "contract" {
		t.Error("mutating a rule changed the catalog")
	}

	if _, err := New(cat, RulesFromCatalog(cat, "legal", "poetry")); err == nil || !strings.Contains(err.Error(), `unknown template "poetry"`) {
		t.Errorf("err = %v, want unknown template", err)
	}
}

func TestNew_RulesAreCopied(t *testing.T) {
	rules := DefaultRules()
	r, err := New(templates.Default(), rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules[0].Keywords[0] = "zzz"
	rules[0].TemplateID = "narrative"

	if got := r.Recommend("research.pdf")[0].ID; got != "academic" {
		t.Errorf("got %q after mutating input rules, want academic", got)
	}
}
