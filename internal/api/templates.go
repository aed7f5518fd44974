package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/templates"
)

type recommendationResponse struct {
	Filename  string                    `json:"filename"`
	Matched   bool                      `json:"matched"`
	Keyword   string                    `json:"keyword,omitempty"`
	Templates []*templates.QuizTemplate `json:"templates"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": s.Catalog.All()})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tmpl := s.Catalog.ByID(id)
	if tmpl == nil {
		writeError(w, http.StatusNotFound, "template not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// handleRecommend suggests templates for ?filename=. A missing or empty
// filename yields the fallback template alone.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	m := s.Recommender.Classify(filename)
	writeJSON(w, http.StatusOK, s.recommendation(filename, m, s.Recommender.Templates(m)))
}

func (s *Server) recommendation(filename string, m recommend.Match, ts []*templates.QuizTemplate) recommendationResponse {
	s.Metrics.ObserveRecommendation(ts[0].ID)
	return recommendationResponse{
		Filename:  filename,
		Matched:   m.Matched(),
		Keyword:   m.Keyword,
		Templates: ts,
	}
}
