package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizwise/internal/llm"
	"github.com/abhisek/quizwise/internal/templates"
)

// MaxQuestions caps the size of a single quiz.
const MaxQuestions = 50

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Title     string `json:"title"`
	Questions []struct {
		Type        string   `json:"type"`
		Text        string   `json:"text"`
		Choices     []string `json:"choices"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
		FocusArea   string   `json:"focus_area"`
	} `json:"questions"`
}

// Generate produces a quiz for input. A retryable validation failure
// triggers a fresh generation, up to Config.MaxAttempts in total.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Quiz, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGeneration)
	counts := input.Template.QuestionTypes.Split(input.QuestionCount)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, counts, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for range g.config.MaxAttempts {
		quiz, err := g.generateOnce(ctx, req, input)
		if err == nil {
			return quiz, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req llm.Request, input GenerateInput) (*Quiz, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	quiz := &Quiz{
		Title:      strings.TrimSpace(raw.Title),
		TemplateID: input.Template.ID,
		Questions:  make([]Question, len(raw.Questions)),
	}
	for i, rq := range raw.Questions {
		quiz.Questions[i] = Question{
			Type:        templates.QuestionType(rq.Type),
			Text:        strings.TrimSpace(rq.Text),
			Choices:     rq.Choices,
			Answer:      strings.TrimSpace(rq.Answer),
			Explanation: strings.TrimSpace(rq.Explanation),
			FocusArea:   rq.FocusArea,
		}
		if quiz.Questions[i].Type == templates.TypeTrueFalse {
			quiz.Questions[i].Answer = strings.ToLower(quiz.Questions[i].Answer)
		}
	}
	if quiz.Title == "" {
		quiz.Title = fmt.Sprintf("%s quiz: %s", input.Template.Name, input.DocumentName)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(quiz, input); verr != nil {
			return nil, verr
		}
	}

	return quiz, nil
}

func checkInput(input GenerateInput) error {
	switch {
	case input.Template == nil:
		return fmt.Errorf("quiz template is required")
	case strings.TrimSpace(input.Content) == "":
		return fmt.Errorf("document content is empty")
	case input.QuestionCount < 1 || input.QuestionCount > MaxQuestions:
		return fmt.Errorf("question count must be between 1 and %d, got %d", MaxQuestions, input.QuestionCount)
	}
	return nil
}
