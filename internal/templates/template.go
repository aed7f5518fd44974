package templates

import "fmt"

// FallbackID is the id of the general-purpose template every catalog must carry.
const FallbackID = "general"

// Icon identifies the glyph a UI shows next to a template.
type Icon int

const (
	IconSparkles Icon = iota // General purpose
	IconGraduationCap
	IconCode
	IconBriefcase
	IconBookOpen
)

// AllIcons returns every supported icon in declaration order.
func AllIcons() []Icon {
	return []Icon{
		IconSparkles,
		IconGraduationCap,
		IconCode,
		IconBriefcase,
		IconBookOpen,
	}
}

// String returns the wire name of the icon, e.g. "graduation-cap".
func (i Icon) String() string {
	switch i {
	case IconSparkles:
		return "sparkles"
	case IconGraduationCap:
		return "graduation-cap"
	case IconCode:
		return "code"
	case IconBriefcase:
		return "briefcase"
	case IconBookOpen:
		return "book-open"
	default:
		return fmt.Sprintf("icon(%d)", int(i))
	}
}

// MarshalText encodes the icon by its wire name.
func (i Icon) MarshalText() ([]byte, error) {
	for _, known := range AllIcons() {
		if i == known {
			return []byte(i.String()), nil
		}
	}
	return nil, fmt.Errorf("unknown icon %d", int(i))
}

// ParseIcon maps a wire name back to an Icon.
func ParseIcon(name string) (Icon, error) {
	for _, i := range AllIcons() {
		if i.String() == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown icon %q", name)
}

// QuestionTypeDistribution is the percentage split of a quiz across
// question types. The three values sum to 100.
type QuestionTypeDistribution struct {
	MultipleChoice int `json:"multipleChoice"`
	TrueFalse      int `json:"trueFalse"`
	ShortAnswer    int `json:"shortAnswer"`
}

// Total returns the sum of the three percentages.
func (d QuestionTypeDistribution) Total() int {
	return d.MultipleChoice + d.TrueFalse + d.ShortAnswer
}

// Validate reports whether the distribution is well formed.
func (d QuestionTypeDistribution) Validate() error {
	if d.MultipleChoice < 0 || d.TrueFalse < 0 || d.ShortAnswer < 0 {
		return fmt.Errorf("question type percentages must be non-negative, got %d/%d/%d",
			d.MultipleChoice, d.TrueFalse, d.ShortAnswer)
	}
	if t := d.Total(); t != 100 {
		return fmt.Errorf("question type percentages must sum to 100, got %d", t)
	}
	return nil
}

// QuizTemplate describes how quiz questions should be generated for a
// category of document.
type QuizTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// DocumentTypes are lowercase keywords describing the documents this
	// template suits. The recommender matches filenames against them; the
	// fallback template's are descriptive only, since it is chosen when
	// nothing else matches.
	DocumentTypes []string `json:"documentTypes"`

	Icon Icon `json:"icon"`

	// PromptModifier is appended to the generation prompt.
	PromptModifier string `json:"promptModifier"`

	QuestionTypes    QuestionTypeDistribution `json:"questionTypes"`
	FocusAreas       []string                 `json:"focusAreas"`
	ExampleQuestions []string                 `json:"exampleQuestions"`
}

// IsFallback reports whether t is the general-purpose template.
func (t *QuizTemplate) IsFallback() bool {
	return t.ID == FallbackID
}

// UnmarshalText decodes an icon from its wire name.
func (i *Icon) UnmarshalText(b []byte) error {
	parsed, err := ParseIcon(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
