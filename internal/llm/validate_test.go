package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A single quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":   map[string]any{"type": "string"},
				"points": map[string]any{"type": "integer", "minimum": 0},
				"type":   map[string]any{"type": "string", "enum": []string{"multiple_choice", "true_false", "short_answer"}},
			},
			"required": []string{"text", "points"},
		},
	}
}

func assertInvalid(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"text":"What is a mutex?","points":2,"type":"short_answer"}`)
	if err := validateResponse(questionSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"text":"Define latency.","points":1}`)
	if err := validateResponse(questionSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"text":"Incomplete"}`},
		{"wrong type", `{"text":"Q","points":"two"}`},
		{"enum", `{"text":"Q","points":1,"type":"essay"}`},
		{"below minimum", `{"text":"Q","points":-1}`},
		{"malformed", `{not json}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertInvalid(t, validateResponse(questionSchema(), json.RawMessage(tt.raw)))
		})
	}
}

func TestValidateResponse_KeepsContent(t *testing.T) {
	raw := json.RawMessage(`{"text":"Q"}`)
	err := validateResponse(questionSchema(), raw)

	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
	if string(invErr.Content) != string(raw) {
		t.Fatalf("expected content to be preserved, got %s", invErr.Content)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-nested-quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"choices": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
						"required": []string{"choices"},
					},
				},
			},
			"required": []string{"questions"},
		},
	}

	valid := json.RawMessage(`{"questions":[{"choices":["a","b"]}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	assertInvalid(t, validateResponse(schema, json.RawMessage(`{"questions":[{"choices":[1,2]}]}`)))
}

func TestSchema_Compile(t *testing.T) {
	if err := questionSchema().Compile(); err != nil {
		t.Fatalf("expected valid schema, got: %v", err)
	}

	bad := &Schema{Name: "test-bad-schema", Definition: map[string]any{"type": 42}}
	if err := bad.Compile(); err == nil {
		t.Fatal("expected compile error for invalid schema")
	}
}
