// Package quizzes orchestrates quiz generation for uploaded documents.
package quizzes

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/metrics"
	"github.com/abhisek/quizwise/internal/quizgen"
	"github.com/abhisek/quizwise/internal/store"
	"github.com/abhisek/quizwise/internal/templates"
)

var (
	ErrUnknownTemplate  = errors.New("unknown quiz template")
	ErrDocumentNotReady = errors.New("document is not ready for quiz generation")
	ErrInvalidCount     = fmt.Errorf("question count must be between 1 and %d", quizgen.MaxQuestions)
	ErrNoContent        = errors.New("no document text available")
	ErrNotFound         = errors.New("quiz not found")
)

// DefaultQuestionCount is used when neither the request nor Options
// set a count.
const DefaultQuestionCount = 10

// Request asks for a quiz over one document.
type Request struct {
	DocumentID string
	TemplateID string

	// QuestionCount defaults to the service's default count when zero.
	QuestionCount int

	// Content is the document text. When empty, text documents are read
	// from object storage.
	Content string
}

// Result is a generated quiz together with its identity.
type Result struct {
	ID         string
	DocumentID string
	CreatedAt  time.Time
	*quizgen.Quiz
}

// Service generates quizzes and records every attempt.
type Service struct {
	catalog   *templates.Catalog
	docs      *documents.Service
	generator quizgen.Generator
	events    store.EventRepo
	metrics   *metrics.Metrics
	maxRead   int64
	defCount  int
	log       *zap.Logger
}

// Options configures a Service. Metrics may be nil.
type Options struct {
	Catalog   *templates.Catalog
	Documents *documents.Service
	Generator quizgen.Generator
	Events    store.EventRepo
	Metrics   *metrics.Metrics
	Logger    *zap.Logger

	// MaxReadBytes bounds how much of a stored document is read.
	MaxReadBytes int64

	// DefaultQuestionCount applies to requests without a count. Zero
	// selects the package DefaultQuestionCount.
	DefaultQuestionCount int
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog:   opts.Catalog,
		docs:      opts.Documents,
		generator: opts.Generator,
		events:    opts.Events,
		metrics:   opts.Metrics,
		maxRead:   opts.MaxReadBytes,
		defCount:  cmp.Or(opts.DefaultQuestionCount, DefaultQuestionCount),
		log:       log,
	}
}

// Generate produces a quiz for req. Only attempts that reach the
// generator are recorded; request errors are returned directly.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	tmpl := s.catalog.ByID(req.TemplateID)
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, req.TemplateID)
	}

	count := req.QuestionCount
	if count == 0 {
		count = s.defCount
	}
	if count < 1 || count > quizgen.MaxQuestions {
		return nil, ErrInvalidCount
	}

	doc, err := s.docs.Get(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != store.DocumentUploaded {
		return nil, ErrDocumentNotReady
	}

	content := req.Content
	if content == "" {
		content, err = s.docs.ReadText(ctx, doc, s.maxRead)
		switch {
		case errors.Is(err, documents.ErrNotText):
			return nil, fmt.Errorf("%w: %s documents need the text supplied with the request", ErrNoContent, doc.ContentType)
		case errors.Is(err, documents.ErrUploadMissing):
			return nil, ErrDocumentNotReady
		case err != nil:
			return nil, fmt.Errorf("read document: %w", err)
		}
	}

	quizID := uuid.NewString()
	start := time.Now()
	quiz, genErr := s.generator.Generate(ctx, quizgen.GenerateInput{
		Template:      tmpl,
		DocumentName:  doc.Filename,
		Content:       content,
		QuestionCount: count,
	})
	elapsed := time.Since(start)
	s.metrics.ObserveGeneration(tmpl.ID, genErr == nil, elapsed)

	event := store.QuizGenerationEventData{
		QuizID:         quizID,
		DocumentID:     doc.ID,
		TemplateID:     tmpl.ID,
		RequestedCount: count,
		Success:        genErr == nil,
		LatencyMs:      elapsed.Milliseconds(),
	}
	if genErr != nil {
		event.ErrorMessage = genErr.Error()
	} else {
		event.Title = quiz.Title
		event.Questions = toStored(quiz.Questions)
	}
	if err := s.events.AppendQuizGeneration(context.WithoutCancel(ctx), event); err != nil {
		s.log.Warn("failed to record quiz generation event", zap.String("quiz_id", quizID), zap.Error(err))
	}

	if genErr != nil {
		s.log.Warn("quiz generation failed",
			zap.String("document_id", doc.ID),
			zap.String("template_id", tmpl.ID),
			zap.Error(genErr),
		)
		return nil, fmt.Errorf("generate quiz: %w", genErr)
	}

	s.log.Info("quiz generated",
		zap.String("quiz_id", quizID),
		zap.String("document_id", doc.ID),
		zap.String("template_id", tmpl.ID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Duration("elapsed", elapsed),
	)
	return &Result{ID: quizID, DocumentID: doc.ID, CreatedAt: start, Quiz: quiz}, nil
}

// Get returns a previously generated quiz, or ErrNotFound when the id
// is unknown or the generation failed.
func (s *Service) Get(ctx context.Context, id string) (*Result, error) {
	rec, err := s.events.GetQuizGeneration(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.Success {
		return nil, ErrNotFound
	}

	quiz := &quizgen.Quiz{
		Title:      rec.Title,
		TemplateID: rec.TemplateID,
		Questions:  fromStored(rec.Questions),
	}
	return &Result{ID: rec.QuizID, DocumentID: rec.DocumentID, CreatedAt: rec.Time, Quiz: quiz}, nil
}

func toStored(qs []quizgen.Question) []store.QuizQuestionData {
	out := make([]store.QuizQuestionData, len(qs))
	for i, q := range qs {
		out[i] = store.QuizQuestionData{
			Type:        string(q.Type),
			Text:        q.Text,
			Choices:     q.Choices,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			FocusArea:   q.FocusArea,
		}
	}
	return out
}

func fromStored(qs []store.QuizQuestionData) []quizgen.Question {
	out := make([]quizgen.Question, len(qs))
	for i, q := range qs {
		out[i] = quizgen.Question{
			Type:        templates.QuestionType(q.Type),
			Text:        q.Text,
			Choices:     q.Choices,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			FocusArea:   q.FocusArea,
		}
	}
	return out
}
