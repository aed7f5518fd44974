// Package metrics holds the Prometheus collectors for the HTTP API and
// the quiz services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics is the set of application collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recommendations *prometheus.CounterVec
	generations     *prometheus.CounterVec
	genDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizwise_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quizwise_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 30},
			},
			[]string{"method", "route"},
		),
		recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizwise_recommendations_total",
				Help: "Template recommendations by primary template",
			},
			[]string{"template"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizwise_quiz_generations_total",
				Help: "Quiz generation attempts by template and outcome",
			},
			[]string{"template", "outcome"},
		),
		genDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quizwise_quiz_generation_duration_seconds",
				Help:    "Duration of quiz generation",
				Buckets: []float64{1, 5, 10, 20, 40, 60, 120},
			},
			[]string{"template"},
		),
	}

	for _, c := range []prometheus.Collector{m.requests, m.requestDuration, m.recommendations, m.generations, m.genDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRecommendation counts a recommendation whose primary template is templateID.
func (m *Metrics) ObserveRecommendation(templateID string) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(templateID).Inc()
}

// ObserveGeneration records one quiz generation attempt.
func (m *Metrics) ObserveGeneration(templateID string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	m.generations.WithLabelValues(templateID, outcome).Inc()
	m.genDuration.WithLabelValues(templateID).Observe(d.Seconds())
}

// Middleware records request count and duration, labelled by the chi
// route pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
