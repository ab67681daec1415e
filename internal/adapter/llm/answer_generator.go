package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chatbot-ai/internal/cache"
	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// AnswerGenerator implements domain.AnswerGenerator with a chat model at temperature 0.
// With a cache set, answers are reused for an identical (question, context) pair.
type AnswerGenerator struct {
	model     llms.Model
	modelName string
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewAnswerGenerator creates an AnswerGenerator. cache may be nil.
func NewAnswerGenerator(model llms.Model, modelName string, answerCache domain.Cache, cacheTTL time.Duration) (*AnswerGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("chat model cannot be nil for AnswerGenerator")
	}
	return &AnswerGenerator{
		model:     model,
		modelName: modelName,
		cache:     answerCache,
		cacheTTL:  cacheTTL,
	}, nil
}

// GenerateAnswer returns the model's answer, trimmed. The no-answer sentinel
// is returned as the model wrote it.
func (g *AnswerGenerator) GenerateAnswer(ctx context.Context, question, contextText string) (string, error) {
	l := logger.Get()
	cacheKey := cache.GenerateCacheKey("generate", "answer", cache.HashKey(question, "\x00", contextText), g.modelName)

	if g.cache != nil {
		cached, err := g.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			l.Debug("Answer cache hit", zap.String("key", cacheKey))
			return cached, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			l.Warn("Answer cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	l.Info("Generating answer with LLM",
		zap.String("model", g.modelName),
		zap.Int("question_len", len(question)),
		zap.Int("context_len", len(contextText)))

	raw, err := complete(ctx, g.model,
		generationSystemPrompt,
		fmt.Sprintf(generationUserPrompt, contextText, question),
		llms.WithTemperature(0),
	)
	if err != nil {
		l.Error("Answer generation failed", zap.String("model", g.modelName), zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}

	answer := strings.TrimSpace(raw)
	l.Debug("Raw LLM answer received", zap.String("answer", answer))

	if g.cache != nil && answer != "" {
		if err := g.cache.Set(ctx, cacheKey, answer, g.cacheTTL); err != nil {
			l.Warn("Failed to write answer to cache", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return answer, nil
}

var _ domain.AnswerGenerator = (*AnswerGenerator)(nil)
