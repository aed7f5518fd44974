package documents

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/storage"
	"github.com/abhisek/quizwise/internal/store"
)

func newTestService(t *testing.T) (*Service, *storage.MemoryStore) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	objects := storage.NewMemoryStore()
	return NewService(st.DocumentRepo(), objects, recommend.NewDefault(), 1<<20, zap.NewNop()), objects
}

func TestValidate(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		in      UploadInput
		wantErr string
	}{
		{"pdf", UploadInput{"paper.pdf", "application/pdf", 100}, ""},
		{"docx", UploadInput{"Plan.DOCX", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 100}, ""},
		{"markdown", UploadInput{"guide.markdown", "text/markdown", 100}, ""},
		{"blank filename", UploadInput{"   ", "text/plain", 100}, "filename is required"},
		{"unsupported type", UploadInput{"image.png", "image/png", 100}, "unsupported content type"},
		{"extension mismatch", UploadInput{"paper.txt", "application/pdf", 100}, "does not match"},
		{"zero size", UploadInput{"a.txt", "text/plain", 0}, "size must be positive"},
		{"too large", UploadInput{"a.txt", "text/plain", 2 << 20}, "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUpload)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUploadLifecycle(t *testing.T) {
	svc, objects := newTestService(t)
	ctx := context.Background()

	up, err := svc.CreateUpload(ctx, UploadInput{Filename: " api-guide.md ", ContentType: "text/markdown", SizeBytes: 11})
	require.NoError(t, err)
	doc := up.Document
	assert.Equal(t, "api-guide.md", doc.Filename)
	assert.Equal(t, store.DocumentPending, doc.Status)
	assert.Equal(t, "documents/"+doc.ID+"/api-guide.md", doc.ObjectKey)
	assert.True(t, strings.HasSuffix(up.URL, doc.ObjectKey))

	// Completing before the object exists marks the document failed.
	_, err = svc.CompleteUpload(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrUploadMissing)
	failed, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, store.DocumentFailed, failed.Status)

	objects.Put(doc.ObjectKey, []byte("# API guide"), "text/markdown")

	done, err := svc.CompleteUpload(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, store.DocumentUploaded, done.Status)

	// Completing twice is a no-op.
	again, err := svc.CompleteUpload(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, store.DocumentUploaded, again.Status)

	text, err := svc.ReadText(ctx, done, 5)
	require.NoError(t, err)
	assert.Equal(t, "# API", text)
}

func TestRecommend(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	up, err := svc.CreateUpload(ctx, UploadInput{Filename: "Quarterly-Report.pdf", ContentType: "application/pdf", SizeBytes: 10})
	require.NoError(t, err)

	_, recs, match, err := svc.Recommend(ctx, up.Document.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "business", recs[0].ID)
	assert.Equal(t, "general", recs[1].ID)
	assert.Equal(t, "report", match.Keyword)
	assert.Equal(t, match.TemplateID, recs[0].ID)

	other, err := svc.CreateUpload(ctx, UploadInput{Filename: "scan.png", ContentType: "image/png", SizeBytes: 10})
	require.NoError(t, err)
	_, recs, match, err = svc.Recommend(ctx, other.Document.ID)
	require.NoError(t, err)
	assert.False(t, match.Matched())
	require.Len(t, recs, 1)
	assert.Equal(t, "general", recs[0].ID)

	_, _, _, err = svc.Recommend(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadText_Errors(t *testing.T) {
	svc, objects := newTestService(t)
	ctx := context.Background()

	pdf, err := svc.CreateUpload(ctx, UploadInput{Filename: "paper.pdf", ContentType: "application/pdf", SizeBytes: 10})
	require.NoError(t, err)

	_, err = svc.ReadText(ctx, pdf.Document, 0)
	assert.ErrorIs(t, err, ErrNotReady)

	objects.Put(pdf.Document.ObjectKey, []byte("%PDF-1.7"), "application/pdf")
	doc, err := svc.CompleteUpload(ctx, pdf.Document.ID)
	require.NoError(t, err)

	_, err = svc.ReadText(ctx, doc, 0)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestCompleteUpload_Oversized(t *testing.T) {
	svc, objects := newTestService(t)
	ctx := context.Background()

	up, err := svc.CreateUpload(ctx, UploadInput{Filename: "notes.txt", ContentType: "text/plain", SizeBytes: 10})
	require.NoError(t, err)

	objects.Put(up.Document.ObjectKey, make([]byte, 2<<20), "text/plain")
	_, err = svc.CompleteUpload(ctx, up.Document.ID)
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CompleteUpload(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
