package quizzes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/metrics"
	"github.com/abhisek/quizwise/internal/quizgen"
	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/storage"
	"github.com/abhisek/quizwise/internal/store"
	"github.com/abhisek/quizwise/internal/templates"
)

// fakeGenerator returns a quiz with QuestionCount short-answer questions,
// or err when set.
type fakeGenerator struct {
	err   error
	calls []quizgen.GenerateInput
}

func (f *fakeGenerator) Generate(_ context.Context, in quizgen.GenerateInput) (*quizgen.Quiz, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	q := &quizgen.Quiz{Title: "Generated", TemplateID: in.Template.ID}
	for range in.QuestionCount {
		q.Questions = append(q.Questions, quizgen.Question{
			Type:        templates.TypeShortAnswer,
			Text:        "What is it about?",
			Answer:      "Things",
			Explanation: "See page 1",
		})
	}
	return q, nil
}

type fixture struct {
	svc     *Service
	gen     *fakeGenerator
	docs    *documents.Service
	events  store.EventRepo
	objects *storage.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	objects := storage.NewMemoryStore()
	docs := documents.NewService(st.DocumentRepo(), objects, recommend.NewDefault(), 0, zap.NewNop())
	gen := &fakeGenerator{}

	svc := NewService(Options{
		Catalog:      templates.Default(),
		Documents:    docs,
		Generator:    gen,
		Events:       st.EventRepo(),
		Metrics:      m,
		MaxReadBytes: 1 << 20,
	})
	return &fixture{svc: svc, gen: gen, docs: docs, events: st.EventRepo(), objects: objects}
}

// upload registers filename and, when body is non-nil, completes the upload.
func (f *fixture) upload(t *testing.T, filename, contentType string, body []byte) *store.Document {
	t.Helper()
	ctx := context.Background()
	up, err := f.docs.CreateUpload(ctx, documents.UploadInput{Filename: filename, ContentType: contentType, SizeBytes: 10})
	require.NoError(t, err)
	if body == nil {
		return up.Document
	}
	f.objects.Put(up.Document.ObjectKey, body, contentType)
	doc, err := f.docs.CompleteUpload(ctx, up.Document.ID)
	require.NoError(t, err)
	return doc
}

func TestGenerate_ReadsStoredText(t *testing.T) {
	f := newFixture(t)
	doc := f.upload(t, "api-guide.md", "text/markdown", []byte("# Install\nRun make."))

	res, err := f.svc.Generate(context.Background(), Request{DocumentID: doc.ID, TemplateID: "technical", QuestionCount: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, doc.ID, res.DocumentID)
	assert.Len(t, res.Questions, 3)

	require.Len(t, f.gen.calls, 1)
	in := f.gen.calls[0]
	assert.Equal(t, "technical", in.Template.ID)
	assert.Equal(t, "api-guide.md", in.DocumentName)
	assert.Equal(t, "# Install\nRun make.", in.Content)
	assert.Equal(t, 3, in.QuestionCount)
}

func TestGenerate_DefaultCountAndSuppliedContent(t *testing.T) {
	f := newFixture(t)
	doc := f.upload(t, "paper.pdf", "application/pdf", []byte("%PDF-1.7"))

	_, err := f.svc.Generate(context.Background(), Request{DocumentID: doc.ID, TemplateID: "academic", Content: "Extracted text"})
	require.NoError(t, err)

	require.Len(t, f.gen.calls, 1)
	assert.Equal(t, DefaultQuestionCount, f.gen.calls[0].QuestionCount)
	assert.Equal(t, "Extracted text", f.gen.calls[0].Content)
}

func TestGenerate_ConfiguredDefaultCount(t *testing.T) {
	f := newFixture(t)
	svc := NewService(Options{
		Catalog:              templates.Default(),
		Documents:            f.docs,
		Generator:            f.gen,
		Events:               f.events,
		DefaultQuestionCount: 5,
	})
	doc := f.upload(t, "notes.txt", "text/plain", []byte("Some notes."))

	res, err := svc.Generate(context.Background(), Request{DocumentID: doc.ID, TemplateID: "general"})
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)

	_, err = svc.Generate(context.Background(), Request{DocumentID: doc.ID, TemplateID: "general", QuestionCount: 2})
	require.NoError(t, err)

	require.Len(t, f.gen.calls, 2)
	assert.Equal(t, 5, f.gen.calls[0].QuestionCount)
	assert.Equal(t, 2, f.gen.calls[1].QuestionCount, "an explicit count wins over the default")
}

func TestGenerate_RequestErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ready := f.upload(t, "notes.txt", "text/plain", []byte("hello"))
	pending := f.upload(t, "draft.txt", "text/plain", nil)
	pdf := f.upload(t, "scan.pdf", "application/pdf", []byte("%PDF"))

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown template", Request{DocumentID: ready.ID, TemplateID: "poetry"}, ErrUnknownTemplate},
		{"negative count", Request{DocumentID: ready.ID, TemplateID: "general", QuestionCount: -1}, ErrInvalidCount},
		{"too many", Request{DocumentID: ready.ID, TemplateID: "general", QuestionCount: quizgen.MaxQuestions + 1}, ErrInvalidCount},
		{"missing document", Request{DocumentID: "nope", TemplateID: "general"}, documents.ErrNotFound},
		{"pending document", Request{DocumentID: pending.ID, TemplateID: "general"}, ErrDocumentNotReady},
		{"binary without content", Request{DocumentID: pdf.ID, TemplateID: "general"}, ErrNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Generate(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.gen.calls, "request errors must not reach the generator")
}

func TestGenerate_RecordsAndGets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.upload(t, "story.txt", "text/plain", []byte("Once upon a time"))

	res, err := f.svc.Generate(ctx, Request{DocumentID: doc.ID, TemplateID: "narrative", QuestionCount: 2})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, "Generated", got.Title)
	assert.Equal(t, "narrative", got.TemplateID)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, templates.TypeShortAnswer, got.Questions[0].Type)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)

	_, err = f.svc.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerate_FailureRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.upload(t, "notes.txt", "text/plain", []byte("hello"))
	f.gen.err = errors.New("model exploded")

	_, err := f.svc.Generate(ctx, Request{DocumentID: doc.ID, TemplateID: "general", QuestionCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model exploded")
	assert.Len(t, f.gen.calls, 1)
}
