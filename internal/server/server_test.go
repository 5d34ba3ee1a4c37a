package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"moodgen/internal/config"
	"moodgen/internal/domain"
	"moodgen/internal/pipeline"
	"moodgen/internal/prompt"
	"moodgen/internal/sentiment"
)

type stubClassifier struct {
	result domain.ClassificationResult
	err    error
	calls  int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (domain.ClassificationResult, error) {
	s.calls++
	if s.err != nil {
		return domain.ClassificationResult{}, s.err
	}
	return s.result, nil
}

func (s *stubClassifier) Describe() (provider, model string) {
	return "stub", "stub-classifier"
}

type stubGenerator struct {
	err     error
	calls   int
	lastReq domain.GenerationRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return req.SeedText + "The light settled over everything and the day felt effortless.", nil
}

func (s *stubGenerator) Describe() (provider, model string) {
	return "stub", "stub-generator"
}

func newTestServer(t *testing.T, classifier pipeline.Classifier, generator pipeline.Generator) *Server {
	t.Helper()

	cfg := config.Config{
		ListenAddr:          ":0",
		ConfidenceThreshold: 0.6,
		Templates: config.TemplateConfig{
			Positive: "Write an uplifting and positive text about: %s. This is wonderful. ",
			Negative: "Write a critical and negative text about: %s. This is disappointing. ",
			Neutral:  "Write an objective and balanced text about: %s. This is worth examining. ",
		},
		Presets: config.PresetConfig{Short: 80, Medium: 150, Long: 300},
	}

	engine, err := prompt.NewEngine(cfg.Templates.Positive, cfg.Templates.Negative, cfg.Templates.Neutral)
	if err != nil {
		t.Fatalf("building template engine: %v", err)
	}
	pipe := pipeline.New(classifier, generator, sentiment.NewGate(cfg.ConfidenceThreshold), engine, pipeline.Options{})
	return NewServer(cfg, pipe)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decodeGenerateResponse(t *testing.T, rec *httptest.ResponseRecorder) generateResponse {
	t.Helper()
	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body
}
