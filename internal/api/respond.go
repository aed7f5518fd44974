package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/llm"
	"github.com/abhisek/quizwise/internal/quizgen"
	"github.com/abhisek/quizwise/internal/quizzes"
)

// maxBodyBytes caps request bodies. It must stay above the JSON-encoded
// size of createQuizRequest.Content at its validated maximum.
const maxBodyBytes = 8 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decode reads a JSON body into dst and validates it. It writes the
// error response itself and reports false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Error:  "validation failed",
				Fields: fieldErrors(verrs, s.trans),
			})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// fail maps service errors to HTTP responses.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr      *quizgen.ValidationError
		rateLimit *llm.ErrRateLimit
	)

	switch {
	case errors.Is(err, documents.ErrNotFound), errors.Is(err, quizzes.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, documents.ErrInvalidUpload),
		errors.Is(err, quizzes.ErrUnknownTemplate),
		errors.Is(err, quizzes.ErrInvalidCount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, documents.ErrUploadMissing),
		errors.Is(err, quizzes.ErrDocumentNotReady),
		errors.Is(err, quizzes.ErrNoContent):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &rateLimit):
		writeError(w, http.StatusTooManyRequests, "LLM provider rate limited, try again later")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadGateway, "quiz generation produced an invalid quiz")
	case isProviderError(err):
		writeError(w, http.StatusBadGateway, "quiz generation failed")
	default:
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isProviderError(err error) bool {
	var (
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		rejected    *llm.ErrRequestRejected
		maxTokens   *llm.ErrMaxTokensExceeded
	)
	return errors.As(err, &unavailable) || errors.As(err, &invalid) ||
		errors.As(err, &rejected) || errors.As(err, &maxTokens)
}
