package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizwise/internal/quizgen"
	"github.com/abhisek/quizwise/internal/quizzes"
)

type createQuizRequest struct {
	DocumentID    string `json:"documentId" validate:"required,notblank"`
	TemplateID    string `json:"templateId" validate:"required,notblank"`
	QuestionCount int    `json:"questionCount" validate:"omitempty,min=1,max=50"`

	// Content is the document text. Required for PDF and DOCX uploads.
	Content string `json:"content" validate:"max=1000000"`
}

type questionResponse struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Choices     []string `json:"choices,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	FocusArea   string   `json:"focusArea,omitempty"`
}

type quizResponse struct {
	ID         string             `json:"id"`
	DocumentID string             `json:"documentId"`
	TemplateID string             `json:"templateId"`
	Title      string             `json:"title"`
	CreatedAt  time.Time          `json:"createdAt"`
	Questions  []questionResponse `json:"questions"`
}

func toQuizResponse(res *quizzes.Result) quizResponse {
	out := quizResponse{
		ID:         res.ID,
		DocumentID: res.DocumentID,
		TemplateID: res.TemplateID,
		Title:      res.Title,
		CreatedAt:  res.CreatedAt,
		Questions:  make([]questionResponse, len(res.Questions)),
	}
	for i, q := range res.Questions {
		out.Questions[i] = toQuestionResponse(q)
	}
	return out
}

func toQuestionResponse(q quizgen.Question) questionResponse {
	return questionResponse{
		Type:        string(q.Type),
		Text:        q.Text,
		Choices:     q.Choices,
		Answer:      q.Answer,
		Explanation: q.Explanation,
		FocusArea:   q.FocusArea,
	}
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	if s.Quizzes == nil {
		writeError(w, http.StatusServiceUnavailable, "quiz generation is not configured")
		return
	}

	var req createQuizRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.Quizzes.Generate(r.Context(), quizzes.Request{
		DocumentID:    req.DocumentID,
		TemplateID:    req.TemplateID,
		QuestionCount: req.QuestionCount,
		Content:       req.Content,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuizResponse(res))
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	if s.Quizzes == nil {
		writeError(w, http.StatusServiceUnavailable, "quiz generation is not configured")
		return
	}

	res, err := s.Quizzes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuizResponse(res))
}
