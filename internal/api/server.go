// Package api exposes the template catalog, recommendations, document
// uploads and quiz generation over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/metrics"
	"github.com/abhisek/quizwise/internal/quizzes"
	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/templates"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the API is built on. Quizzes, Metrics, Gatherer
// and DB may be nil; the matching routes then report unavailable.
type Deps struct {
	Catalog     *templates.Catalog
	Recommender *recommend.Recommender
	Documents   *documents.Service
	Quizzes     *quizzes.Service
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	DB          Pinger
	Logger      *zap.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	Deps
	log      *zap.Logger
	validate *validator.Validate
	trans    ut.Translator
}

func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	v, trans := newValidator()
	return &Server{Deps: d, log: log, validate: v, trans: trans}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.Metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.Gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Get("/recommendations", s.handleRecommend)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleCreateDocument)
			r.Get("/{id}", s.handleGetDocument)
			r.Post("/{id}/complete", s.handleCompleteDocument)
			r.Get("/{id}/recommendations", s.handleDocumentRecommendations)
		})

		r.Post("/quizzes", s.handleCreateQuiz)
		r.Get("/quizzes/{id}", s.handleGetQuiz)
	})

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		}
		if status >= http.StatusInternalServerError {
			s.log.Warn("http request", fields...)
			return
		}
		s.log.Debug("http request", fields...)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.Ping(ctx); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
