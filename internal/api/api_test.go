package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/llm"
	"github.com/abhisek/quizwise/internal/metrics"
	"github.com/abhisek/quizwise/internal/quizgen"
	"github.com/abhisek/quizwise/internal/quizzes"
	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/storage"
	"github.com/abhisek/quizwise/internal/store"
	"github.com/abhisek/quizwise/internal/templates"
)

type testEnv struct {
	srv     *httptest.Server
	handler http.Handler
	objects *storage.MemoryStore
	mock    *llm.MockProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	catalog := templates.Default()
	rec := recommend.NewDefault()
	objects := storage.NewMemoryStore()
	docs := documents.NewService(st.DocumentRepo(), objects, rec, 0, zap.NewNop())
	mock := llm.NewMockProvider()
	qs := quizzes.NewService(quizzes.Options{
		Catalog:   catalog,
		Documents: docs,
		Generator: quizgen.New(mock, quizgen.DefaultConfig()),
		Events:    st.EventRepo(),
		Metrics:   m,
	})

	s := NewServer(Deps{
		Catalog:     catalog,
		Recommender: rec,
		Documents:   docs,
		Quizzes:     qs,
		Metrics:     m,
		Gatherer:    reg,
		DB:          st,
	})
	h := s.Routes()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, handler: h, objects: objects, mock: mock}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			r = strings.NewReader(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewReader(b)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func templateIDs(t *testing.T, v any) []string {
	t.Helper()
	list, ok := v.([]any)
	require.True(t, ok, "templates is not a list: %v", v)
	ids := make([]string, len(list))
	for i, item := range list {
		ids[i] = item.(map[string]any)["id"].(string)
	}
	return ids
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestHealth_DBDown(t *testing.T) {
	s := NewServer(Deps{Catalog: templates.Default(), Recommender: recommend.NewDefault(), DB: downDB{}})
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("closed") }

func TestTemplates(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"academic", "technical", "business", "narrative", "general"}, templateIDs(t, body["templates"]))

	resp, body = env.do(t, http.MethodGet, "/api/templates/technical", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Technical Documentation", body["name"])
	assert.Equal(t, "code", body["icon"])

	resp, body = env.do(t, http.MethodGet, "/api/templates/General", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "template not found")
}

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query   string
		want    []string
		keyword string
	}{
		{"?filename=research-paper.pdf", []string{"academic", "general"}, "research"},
		{"?filename=Quarterly-Report.docx", []string{"business", "general"}, "report"},
		{"?filename=document.pdf", []string{"general"}, ""},
		{"?filename=", []string{"general"}, ""},
		{"", []string{"general"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := env.do(t, http.MethodGet, "/api/recommendations"+tt.query, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, templateIDs(t, body["templates"]))
			assert.Equal(t, tt.keyword != "", body["matched"])
			if tt.keyword != "" {
				assert.Equal(t, tt.keyword, body["keyword"])
			}
		})
	}
}

func TestCreateDocument_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/documents/", map[string]any{"filename": "  ", "sizeBytes": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "expected field errors: %v", body)
	assert.Contains(t, fields, "filename")
	assert.Contains(t, fields, "contentType")
	assert.Contains(t, fields, "sizeBytes")

	resp, body = env.do(t, http.MethodPost, "/api/documents/", `{"filename": "a.txt", "bogus": 1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid JSON body")

	resp, body = env.do(t, http.MethodPost, "/api/documents/", map[string]any{
		"filename": "image.png", "contentType": "image/png", "sizeBytes": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "unsupported content type")
}

// uploadText registers a text document, stores its body and completes
// the upload. It returns the document id.
func (e *testEnv) uploadText(t *testing.T, filename, text string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/documents/", map[string]any{
		"filename": filename, "contentType": "text/plain", "sizeBytes": len(text),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	doc := body["document"].(map[string]any)
	id := doc["id"].(string)
	assert.Equal(t, "pending", doc["status"])
	assert.Equal(t, http.MethodPut, body["method"])
	assert.NotEmpty(t, body["uploadUrl"])

	e.objects.Put("documents/"+id+"/"+filename, []byte(text), "text/plain")

	resp, body = e.do(t, http.MethodPost, "/api/documents/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "uploaded", body["status"])
	return id
}

func TestDocumentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	id := env.uploadText(t, "user-manual.txt", "Press the red button to start.")

	resp, body := env.do(t, http.MethodGet, "/api/documents/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-manual.txt", body["filename"])

	resp, body = env.do(t, http.MethodGet, "/api/documents/"+id+"/recommendations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"technical", "general"}, templateIDs(t, body["templates"]))
	assert.Equal(t, "manual", body["keyword"])

	resp, body = env.do(t, http.MethodGet, "/api/documents/?limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["documents"], 1)

	resp, _ = env.do(t, http.MethodGet, "/api/documents/?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/documents/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCompleteDocument_MissingObject(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodPost, "/api/documents/", map[string]any{
		"filename": "notes.txt", "contentType": "text/plain", "sizeBytes": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["document"].(map[string]any)["id"].(string)

	resp, _ = env.do(t, http.MethodPost, "/api/documents/"+id+"/complete", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

const oneQuestionQuiz = `{"title": "Button quiz", "questions": [
	{"type": "multiple_choice", "text": "Which button starts the machine?", "choices": ["Red", "Blue", "Green", "Yellow"], "answer": "Red", "explanation": "The manual says to press the red button.", "focus_area": "Procedures and steps"}
]}`

func TestCreateAndGetQuiz(t *testing.T) {
	env := newTestEnv(t)
	id := env.uploadText(t, "user-manual.txt", "Press the red button to start.")
	env.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(oneQuestionQuiz)})

	resp, body := env.do(t, http.MethodPost, "/api/quizzes", map[string]any{
		"documentId": id, "templateId": "technical", "questionCount": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "Button quiz", body["title"])
	assert.Equal(t, "technical", body["templateId"])
	questions := body["questions"].([]any)
	require.Len(t, questions, 1)
	assert.Equal(t, "Red", questions[0].(map[string]any)["answer"])

	quizID := body["id"].(string)
	resp, body = env.do(t, http.MethodGet, "/api/quizzes/"+quizID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Button quiz", body["title"])
	assert.Len(t, body["questions"], 1)

	resp, _ = env.do(t, http.MethodGet, "/api/quizzes/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateQuiz_Errors(t *testing.T) {
	env := newTestEnv(t)
	id := env.uploadText(t, "notes.txt", "Some notes.")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing fields", map[string]any{}, http.StatusBadRequest},
		{"count too large", map[string]any{"documentId": id, "templateId": "general", "questionCount": 51}, http.StatusBadRequest},
		{"unknown template", map[string]any{"documentId": id, "templateId": "poetry"}, http.StatusBadRequest},
		{"unknown document", map[string]any{"documentId": "nope", "templateId": "general"}, http.StatusNotFound},
		// The mock queue is empty, so the provider reports unavailable.
		{"provider down", map[string]any{"documentId": id, "templateId": "general", "questionCount": 1}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, http.MethodPost, "/api/quizzes", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode, body)
		})
	}
}

func TestCreateQuiz_ContentLimits(t *testing.T) {
	env := newTestEnv(t)
	id := env.uploadText(t, "notes.txt", "Some notes.")

	// Over the content limit but under the body cap: a field error, not a decode error.
	resp, body := env.do(t, http.MethodPost, "/api/quizzes", map[string]any{
		"documentId": id,
		"templateId": "general",
		"content":    strings.Repeat("a", 1_500_000),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	assert.Equal(t, "validation failed", body["error"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "fields missing: %v", body)
	assert.Contains(t, fields, "content")

	// Over the body cap.
	huge := `{"documentId":"` + id + `","templateId":"general","content":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quizzes", strings.NewReader(huge)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body exceeds")
}

func TestCreateQuiz_NotConfigured(t *testing.T) {
	s := NewServer(Deps{Catalog: templates.Default(), Recommender: recommend.NewDefault()})
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quizzes", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/recommendations?filename=thesis.pdf", nil)

	resp, err := http.Get(env.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `quizwise_recommendations_total{template="academic"} 1`)
	assert.Contains(t, string(raw), `route="/api/recommendations"`)
}
