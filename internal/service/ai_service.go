package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/logger"
	"chatbot-ai/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SimilarityThreshold = 0.5
	RelevanceThreshold  = 0.5

	CategorizationHypothesisTemplate = "Este texto se refere a {}."
	RelevanceHypothesisTemplate      = "Essa pergunta é respondida por: {}"

	// label sets classified at the same time by Categorize
	categorizeConcurrency = 4

	msgEmptyEmbeddingInput = "A entrada para embedding não pode ser vazia."
	msgClassifierMissing   = "O modelo de classificação não está disponível."
)

// AIService exposes the model-backed operations of the HTTP API.
type AIService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Generate(ctx context.Context, question, contextText string) (string, error)
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
	// Categorize returns the top label of every non-empty label set.
	Categorize(ctx context.Context, text string, labelSets map[string][]string) (map[string]domain.CategoryPrediction, error)
	CheckSimilarity(ctx context.Context, question string, paragraphs []string) (bool, error)
	CheckRelevance(ctx context.Context, question, contextText string) (bool, error)
}

type aiService struct {
	embeddings domain.EmbeddingService
	generator  domain.AnswerGenerator
	keywords   domain.KeywordExtractor
	classifier domain.ZeroShotClassifier // nil when no classifier could be loaded
}

// NewAIService creates an AIService. classifier may be nil, in which case
// Categorize and CheckRelevance report the model as unavailable.
func NewAIService(
	embeddings domain.EmbeddingService,
	generator domain.AnswerGenerator,
	keywords domain.KeywordExtractor,
	classifier domain.ZeroShotClassifier,
) (AIService, error) {
	if embeddings == nil {
		return nil, fmt.Errorf("embedding service cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("answer generator cannot be nil")
	}
	if keywords == nil {
		return nil, fmt.Errorf("keyword extractor cannot be nil")
	}
	return &aiService{
		embeddings: embeddings,
		generator:  generator,
		keywords:   keywords,
		classifier: classifier,
	}, nil
}

func (s *aiService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, domain.NewInvalidInputError(msgEmptyEmbeddingInput)
	}

	vector, err := s.embeddings.Generate(ctx, text)
	if err != nil {
		return nil, asEmbeddingError(err)
	}
	return vector, nil
}

// EmbedBatch rejects only an empty list; empty elements are embedded as given.
func (s *aiService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, domain.NewInvalidInputError(msgEmptyEmbeddingInput)
	}

	vectors, err := s.embeddings.GenerateBatch(ctx, texts)
	if err != nil {
		return nil, asEmbeddingError(err)
	}
	return vectors, nil
}

// asEmbeddingError tags plain adapter errors with CodeEmbeddingError.
func asEmbeddingError(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewEmbeddingError(err)
}

func (s *aiService) Generate(ctx context.Context, question, contextText string) (string, error) {
	return s.generator.GenerateAnswer(ctx, question, contextText)
}

func (s *aiService) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	keywords, err := s.keywords.ExtractKeywords(ctx, text)
	if err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}

func (s *aiService) Categorize(ctx context.Context, text string, labelSets map[string][]string) (map[string]domain.CategoryPrediction, error) {
	if s.classifier == nil {
		return nil, domain.NewModelUnavailableError(msgClassifierMissing)
	}
	var mu sync.Mutex
	results := make(map[string]domain.CategoryPrediction, len(labelSets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(categorizeConcurrency)
	for name, labels := range labelSets {
		if len(labels) == 0 {
			continue
		}
		name, labels := name, labels
		g.Go(func() error {
			scores, err := s.classifier.Classify(gctx, domain.ClassificationRequest{
				Text:               text,
				CandidateLabels:    labels,
				HypothesisTemplate: CategorizationHypothesisTemplate,
				MultiLabel:         false,
			})
			if err != nil {
				return err
			}
			if len(scores) == 0 {
				return domain.NewClassifierError(fmt.Errorf("no scores returned for label set %q", name))
			}

			mu.Lock()
			results[name] = domain.CategoryPrediction{
				PredictedCategory: scores[0].Label,
				ConfidenceScore:   scores[0].Score,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Get().Error("Categorization failed", zap.Int("label_sets", len(labelSets)), zap.Error(err))
		return nil, err
	}

	return results, nil
}

func (s *aiService) CheckSimilarity(ctx context.Context, question string, paragraphs []string) (bool, error) {
	if len(paragraphs) == 0 {
		return false, nil
	}

	texts := make([]string, 0, len(paragraphs)+1)
	texts = append(texts, question)
	texts = append(texts, paragraphs...)

	vectors, err := s.embeddings.GenerateBatch(ctx, texts)
	if err != nil {
		return false, asEmbeddingError(err)
	}
	if len(vectors) != len(texts) {
		return false, domain.NewEmbeddingError(fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors)))
	}

	best, err := util.MaxCosineSimilarity(vectors[0], vectors[1:])
	if err != nil {
		return false, domain.NewEmbeddingError(err)
	}
	logger.Get().Debug("Similarity computed",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Float64("max_similarity", best))

	return best > SimilarityThreshold, nil
}

func (s *aiService) CheckRelevance(ctx context.Context, question, contextText string) (bool, error) {
	if s.classifier == nil {
		return false, domain.NewModelUnavailableError(msgClassifierMissing)
	}

	// The question is the sequence and the context the only candidate label.
	scores, err := s.classifier.Classify(ctx, domain.ClassificationRequest{
		Text:               question,
		CandidateLabels:    []string{contextText},
		HypothesisTemplate: RelevanceHypothesisTemplate,
		MultiLabel:         true,
	})
	if err != nil {
		return false, err
	}
	if len(scores) == 0 {
		return false, domain.NewClassifierError(fmt.Errorf("no score returned for relevance check"))
	}

	logger.Get().Debug("Relevance computed", zap.Float64("score", scores[0].Score))
	return scores[0].Score > RelevanceThreshold, nil
}
