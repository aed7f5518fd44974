// Package documents manages the document upload workflow: register a
// document, hand the client a presigned upload URL, confirm the upload
// and recommend quiz templates for it.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/storage"
	"github.com/abhisek/quizwise/internal/store"
	"github.com/abhisek/quizwise/internal/templates"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrUploadMissing = errors.New("uploaded object not found in storage")
	ErrNotReady      = errors.New("document upload not completed")
	ErrNotText       = errors.New("document content is not plain text")
)

// DefaultMaxSize is the upload size limit when none is configured.
const DefaultMaxSize = 25 << 20

// contentTypes maps allowed MIME types to the file extensions accepted
// for them.
var contentTypes = map[string][]string{
	"application/pdf": {".pdf"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {".docx"},
	"text/plain":    {".txt"},
	"text/markdown": {".md", ".markdown"},
}

// IsText reports whether documents of contentType can be read as text.
func IsText(contentType string) bool {
	return strings.HasPrefix(contentType, "text/")
}

// UploadInput describes a document the client wants to upload.
type UploadInput struct {
	Filename    string
	ContentType string
	SizeBytes   int64
}

// Upload is the result of CreateUpload.
type Upload struct {
	Document  *store.Document
	URL       string
	ExpiresAt time.Time
}

// Service coordinates document metadata and object storage.
type Service struct {
	repo        store.DocumentRepo
	objects     storage.ObjectStore
	recommender *recommend.Recommender
	maxSize     int64
	log         *zap.Logger
}

// NewService creates a Service. maxSize <= 0 selects DefaultMaxSize.
func NewService(repo store.DocumentRepo, objects storage.ObjectStore, rec *recommend.Recommender, maxSize int64, log *zap.Logger) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		objects:     objects,
		recommender: rec,
		maxSize:     maxSize,
		log:         log,
	}
}

// MaxSize returns the upload size limit in bytes.
func (s *Service) MaxSize() int64 { return s.maxSize }

// Validate checks an upload request without side effects.
func (s *Service) Validate(in UploadInput) error {
	name := strings.TrimSpace(in.Filename)
	if name == "" {
		return fmt.Errorf("%w: filename is required", ErrInvalidUpload)
	}

	exts, ok := contentTypes[in.ContentType]
	if !ok {
		return fmt.Errorf("%w: unsupported content type %q", ErrInvalidUpload, in.ContentType)
	}
	ext := strings.ToLower(path.Ext(name))
	if !slices.Contains(exts, ext) {
		return fmt.Errorf("%w: extension %q does not match content type %s", ErrInvalidUpload, ext, in.ContentType)
	}

	if in.SizeBytes <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidUpload)
	}
	if in.SizeBytes > s.maxSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrInvalidUpload, in.SizeBytes, s.maxSize)
	}
	return nil
}

// CreateUpload registers a pending document and returns a presigned URL
// the client uploads the file to.
func (s *Service) CreateUpload(ctx context.Context, in UploadInput) (*Upload, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	doc := &store.Document{
		ID:          id,
		Filename:    strings.TrimSpace(in.Filename),
		ContentType: in.ContentType,
		SizeBytes:   in.SizeBytes,
		ObjectKey:   storage.ObjectKey(id, in.Filename),
		Status:      store.DocumentPending,
	}

	u, expires, err := s.objects.PresignUpload(ctx, doc.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("document registered",
		zap.String("document_id", doc.ID),
		zap.String("filename", doc.Filename),
		zap.Int64("size_bytes", doc.SizeBytes))

	return &Upload{Document: doc, URL: u.String(), ExpiresAt: expires}, nil
}

// CompleteUpload checks that the object reached storage and marks the
// document uploaded, or failed with ErrUploadMissing when it did not.
func (s *Service) CompleteUpload(ctx context.Context, id string) (*store.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == store.DocumentUploaded {
		return doc, nil
	}

	info, err := s.objects.Stat(ctx, doc.ObjectKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		if _, serr := s.repo.SetStatus(ctx, id, store.DocumentFailed); serr != nil {
			return nil, serr
		}
		s.log.Warn("upload missing from storage", zap.String("document_id", id), zap.String("key", doc.ObjectKey))
		return nil, ErrUploadMissing
	}
	if err != nil {
		return nil, err
	}
	if info.Size > s.maxSize {
		if _, serr := s.repo.SetStatus(ctx, id, store.DocumentFailed); serr != nil {
			return nil, serr
		}
		return nil, fmt.Errorf("%w: stored object is %d bytes", ErrInvalidUpload, info.Size)
	}

	updated, err := s.repo.SetStatus(ctx, id, store.DocumentUploaded)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.log.Info("document uploaded", zap.String("document_id", id), zap.Int64("size_bytes", info.Size))
	return updated, nil
}

// Get returns the document or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*store.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// List returns recent documents, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]store.Document, error) {
	return s.repo.List(ctx, limit)
}

// Recommend suggests quiz templates for a stored document by its filename.
func (s *Service) Recommend(ctx context.Context, id string) (*store.Document, []*templates.QuizTemplate, recommend.Match, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, recommend.Match{}, err
	}
	m := s.recommender.Classify(doc.Filename)
	return doc, s.recommender.Templates(m), m, nil
}

// ReadText returns the body of an uploaded text document, truncated to
// limit bytes when limit > 0. Binary formats return ErrNotText.
func (s *Service) ReadText(ctx context.Context, doc *store.Document, limit int64) (string, error) {
	if doc.Status != store.DocumentUploaded {
		return "", ErrNotReady
	}
	if !IsText(doc.ContentType) {
		return "", ErrNotText
	}

	rc, err := s.objects.Open(ctx, doc.ObjectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", ErrUploadMissing
		}
		return "", err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", doc.ObjectKey, err)
	}
	return string(b), nil
}
