package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizQuestion is the stored form of a generated question.
type QuizQuestion struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Choices     []string `json:"choices,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	FocusArea   string   `json:"focus_area,omitempty"`
}

// QuizGenerationEvent records one quiz generation attempt, successful
// or not. Successful attempts carry the generated questions.
type QuizGenerationEvent struct {
	ent.Schema
}

func (QuizGenerationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizGenerationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("quiz_id").
			NotEmpty().
			Unique(),
		field.String("document_id").
			NotEmpty(),
		field.String("template_id").
			NotEmpty(),
		field.String("title").
			Default(""),
		field.Int("requested_count").
			NonNegative(),
		field.Int("question_count").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
		field.Int64("latency_ms").
			Default(0),
		field.JSON("questions", []QuizQuestion{}).
			Optional(),
	}
}

func (QuizGenerationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id"),
		index.Fields("template_id"),
	}
}
