package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	defaultTimeout = 60 * time.Second
)

type zeroShotParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template,omitempty"`
	MultiLabel         bool     `json:"multi_label"`
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
	Options    map[string]bool    `json:"options,omitempty"`
}

// Older deployments answer {"labels": [...], "scores": [...]},
// newer ones a list of {"label", "score"} objects.
type zeroShotColumns struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type zeroShotRow struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HFZeroShotClassifier calls a Hugging Face hosted NLI model through the
// zero-shot-classification pipeline.
type HFZeroShotClassifier struct {
	endpoint   string
	token      string
	model      string
	httpClient *http.Client
}

// NewHFZeroShotClassifier creates a classifier for model served under baseURL.
func NewHFZeroShotClassifier(baseURL, token, model string, timeout time.Duration) (*HFZeroShotClassifier, error) {
	if token == "" {
		return nil, fmt.Errorf("huggingface API token cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("zero-shot model name cannot be empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HFZeroShotClassifier{
		endpoint:   strings.TrimRight(baseURL, "/") + "/models/" + model,
		token:      token,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Classify scores req.CandidateLabels against req.Text, highest score first.
func (c *HFZeroShotClassifier) Classify(ctx context.Context, req domain.ClassificationRequest) ([]domain.LabelScore, error) {
	if len(req.CandidateLabels) == 0 {
		return nil, fmt.Errorf("at least one candidate label is required")
	}

	payload, err := json.Marshal(zeroShotRequest{
		Inputs: req.Text,
		Parameters: zeroShotParameters{
			CandidateLabels:    req.CandidateLabels,
			HypothesisTemplate: req.HypothesisTemplate,
			MultiLabel:         req.MultiLabel,
		},
		Options: map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zero-shot request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create zero-shot request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewClassifierError(fmt.Errorf("failed to call zero-shot endpoint: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewClassifierError(fmt.Errorf("failed to read zero-shot response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Get().Error("Zero-shot endpoint returned error status",
			zap.String("model", c.model),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, domain.NewClassifierError(fmt.Errorf("zero-shot endpoint returned status: %d, body: %s", resp.StatusCode, string(body)))
	}

	scores, err := parseZeroShotResponse(body)
	if err != nil {
		return nil, domain.NewClassifierError(err)
	}
	return scores, nil
}

func parseZeroShotResponse(body []byte) ([]domain.LabelScore, error) {
	trimmed := bytes.TrimSpace(body)
	var scores []domain.LabelScore

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []zeroShotRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal zero-shot response: %w", err)
		}
		for _, r := range rows {
			scores = append(scores, domain.LabelScore{Label: r.Label, Score: r.Score})
		}
	} else {
		var cols zeroShotColumns
		if err := json.Unmarshal(trimmed, &cols); err != nil {
			return nil, fmt.Errorf("failed to unmarshal zero-shot response: %w", err)
		}
		if len(cols.Labels) != len(cols.Scores) {
			return nil, fmt.Errorf("zero-shot response has %d labels but %d scores", len(cols.Labels), len(cols.Scores))
		}
		for i, label := range cols.Labels {
			scores = append(scores, domain.LabelScore{Label: label, Score: cols.Scores[i]})
		}
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("zero-shot response contains no labels")
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores, nil
}

var _ domain.ZeroShotClassifier = (*HFZeroShotClassifier)(nil)
