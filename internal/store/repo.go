package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose restricts LLM event queries to one purpose label.
	Purpose string
}

// DocumentStatus tracks a document through the upload workflow.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentUploaded DocumentStatus = "uploaded"
	DocumentFailed   DocumentStatus = "failed"
)

// Document is the stored metadata for an uploaded document.
type Document struct {
	ID          string
	Filename    string
	ContentType string
	SizeBytes   int64
	ObjectKey   string
	Status      DocumentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentRepo persists document metadata.
type DocumentRepo interface {
	Create(ctx context.Context, doc *Document) error

	// Get returns the document, or nil if it does not exist.
	Get(ctx context.Context, id string) (*Document, error)

	// SetStatus updates the status and returns the updated document,
	// or nil if it does not exist.
	SetStatus(ctx context.Context, id string, status DocumentStatus) (*Document, error)

	// List returns the most recent documents first.
	List(ctx context.Context, limit int) ([]Document, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID       int
	Sequence int64
	Time     time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Key          string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// QuizQuestionData is the stored form of one generated question.
type QuizQuestionData struct {
	Type        string
	Text        string
	Choices     []string
	Answer      string
	Explanation string
	FocusArea   string
}

// QuizGenerationEventData captures one quiz generation attempt.
type QuizGenerationEventData struct {
	QuizID         string
	DocumentID     string
	TemplateID     string
	Title          string
	RequestedCount int
	Success        bool
	ErrorMessage   string
	LatencyMs      int64
	Questions      []QuizQuestionData
}

// QuizGenerationRecord is a stored quiz generation event.
type QuizGenerationRecord struct {
	Sequence int64
	Time     time.Time
	QuizGenerationEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendQuizGeneration records a quiz generation attempt.
	AppendQuizGeneration(ctx context.Context, data QuizGenerationEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMEvent returns one LLM request event by ID, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error)

	// GetQuizGeneration returns the generation event for a quiz, or nil.
	GetQuizGeneration(ctx context.Context, quizID string) (*QuizGenerationRecord, error)

	// LLMUsageByPurpose aggregates request counts and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates request counts and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
