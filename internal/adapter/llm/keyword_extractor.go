package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const keywordsSchema = `{
  "type": "object",
  "required": ["keywords"],
  "properties": {
    "keywords": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

// KeywordExtractor implements domain.KeywordExtractor by asking a chat model for JSON.
type KeywordExtractor struct {
	model     llms.Model
	modelName string
	schema    *gojsonschema.Schema
}

// NewKeywordExtractor creates a KeywordExtractor.
func NewKeywordExtractor(model llms.Model, modelName string) (*KeywordExtractor, error) {
	if model == nil {
		return nil, fmt.Errorf("chat model cannot be nil for KeywordExtractor")
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(keywordsSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile keywords schema: %w", err)
	}
	return &KeywordExtractor{model: model, modelName: modelName, schema: schema}, nil
}

// ExtractKeywords returns the keywords the model proposes for text.
// Upstream failures are errors; a reply that is not the expected JSON yields an empty slice.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	l := logger.Get()

	raw, err := complete(ctx, e.model,
		keywordSystemPrompt,
		fmt.Sprintf(keywordUserPrompt, text),
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	)
	if err != nil {
		l.Error("Keyword extraction call failed", zap.String("model", e.modelName), zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	l.Debug("Raw LLM keyword response received", zap.String("raw_response", raw))
	return e.parse(raw), nil
}

func (e *KeywordExtractor) parse(raw string) []string {
	l := logger.Get()

	doc := extractJSONObject(raw)
	if doc == "" {
		l.Warn("No JSON object found in keyword response", zap.String("raw_response", raw))
		return []string{}
	}

	result, err := e.schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		l.Warn("Keyword response is not valid JSON", zap.String("json", doc), zap.Error(err))
		return []string{}
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		l.Warn("Keyword response does not match schema", zap.String("json", doc), zap.Strings("violations", violations))
		return []string{}
	}

	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		l.Warn("Failed to unmarshal keyword response", zap.String("json", doc), zap.Error(err))
		return []string{}
	}

	return normalizeKeywords(parsed.Keywords)
}

// normalizeKeywords trims keywords, drops empties and case-insensitive
// duplicates, and keeps the model's spelling and order.
func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		folded := strings.ToLower(k)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, k)
	}
	return out
}

var _ domain.KeywordExtractor = (*KeywordExtractor)(nil)
