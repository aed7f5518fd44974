package templates

import (
	"encoding/json"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		dist QuestionTypeDistribution
		n    int
		want [3]int // MC, TF, SA
	}{
		{"exact tens", QuestionTypeDistribution{60, 20, 20}, 10, [3]int{6, 2, 2}},
		{"exact fives", QuestionTypeDistribution{50, 25, 25}, 20, [3]int{10, 5, 5}},
		{"remainder to largest share", QuestionTypeDistribution{50, 20, 30}, 7, [3]int{4, 1, 2}},
		{"tie goes to multiple choice", QuestionTypeDistribution{40, 20, 40}, 1, [3]int{1, 0, 0}},
		{"zero share never grows", QuestionTypeDistribution{50, 50, 0}, 3, [3]int{2, 1, 0}},
		{"all one type", QuestionTypeDistribution{100, 0, 0}, 4, [3]int{4, 0, 0}},
		{"zero questions", QuestionTypeDistribution{60, 20, 20}, 0, [3]int{0, 0, 0}},
		{"negative questions", QuestionTypeDistribution{60, 20, 20}, -3, [3]int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.dist.Split(tt.n)
			gotArr := [3]int{got[TypeMultipleChoice], got[TypeTrueFalse], got[TypeShortAnswer]}
			if gotArr != tt.want {
				t.Errorf("Split(%d) = %v, want %v", tt.n, gotArr, tt.want)
			}
		})
	}
}

func TestSplit_AlwaysSumsToN(t *testing.T) {
	for _, tmpl := range Default().All() {
		for n := 1; n <= 50; n++ {
			if got := tmpl.QuestionTypes.Split(n).Total(); got != n {
				t.Errorf("%s: Split(%d) totals %d", tmpl.ID, n, got)
			}
		}
	}
}

func TestIcon_RoundTrip(t *testing.T) {
	for _, icon := range AllIcons() {
		parsed, err := ParseIcon(icon.String())
		if err != nil {
			t.Fatalf("ParseIcon(%q): %v", icon.String(), err)
		}
		if parsed != icon {
			t.Errorf("ParseIcon(%q) = %v, want %v", icon.String(), parsed, icon)
		}
	}
}

func TestIcon_Unknown(t *testing.T) {
	if _, err := ParseIcon("rocket"); err == nil {
		t.Error("expected error for unknown icon name")
	}
	if _, err := Icon(99).MarshalText(); err == nil {
		t.Error("expected error marshaling unknown icon")
	}
}

func TestQuizTemplate_JSONUsesIconName(t *testing.T) {
	b, err := json.Marshal(Default().ByID("technical"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["icon"] != "code" {
		t.Errorf("icon = %v, want %q", decoded["icon"], "code")
	}
	qt, ok := decoded["questionTypes"].(map[string]any)
	if !ok {
		t.Fatalf("questionTypes missing: %v", decoded)
	}
	if qt["multipleChoice"] != float64(60) {
		t.Errorf("multipleChoice = %v, want 60", qt["multipleChoice"])
	}
}
