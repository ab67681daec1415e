package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatbot-ai/internal/config"
	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/handler"
	"chatbot-ai/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noClassifierService answers every call with a fixed value.
type noClassifierService struct{}

func (noClassifierService) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1}, nil
}
func (noClassifierService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return [][]float32{{1}}, nil
}
func (noClassifierService) Generate(ctx context.Context, question, contextText string) (string, error) {
	return "ok", nil
}
func (noClassifierService) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	return []string{}, nil
}
func (noClassifierService) Categorize(ctx context.Context, text string, labelSets map[string][]string) (map[string]domain.CategoryPrediction, error) {
	return nil, domain.NewModelUnavailableError("O modelo de classificação não está disponível.")
}
func (noClassifierService) CheckSimilarity(ctx context.Context, question string, paragraphs []string) (bool, error) {
	return false, nil
}
func (noClassifierService) CheckRelevance(ctx context.Context, question, contextText string) (bool, error) {
	return false, domain.NewModelUnavailableError("O modelo de classificação não está disponível.")
}

func TestNewApp_Routes(t *testing.T) {
	app := newApp(
		config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second, BodyLimit: 1024 * 1024},
		handler.NewAIHandler(noClassifierService{}),
		handler.NewHealthHandler(),
	)

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodPost, "/embed", `{"input": "a"}`, http.StatusOK},
		{http.MethodPost, "/generate", `{"context": "c", "question": "q"}`, http.StatusOK},
		{http.MethodPost, "/extract-keywords", `{"text": "t"}`, http.StatusOK},
		{http.MethodPost, "/similarity", `{"question": "q", "paragraphs": []}`, http.StatusOK},
		{http.MethodPost, "/relevance", `{"question": "q", "context": "c"}`, http.StatusServiceUnavailable},
		{http.MethodPost, "/categorize", `{"text": "t", "label_sets": {"a": ["b"]}}`, http.StatusServiceUnavailable},
		{http.MethodGet, "/does-not-exist", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
		})
	}
}
