package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"chatbot-ai/internal/cache"
	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/logger"

	"github.com/tmc/langchaingo/embeddings"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is used when no positive TTL is configured.
const DefaultCacheTTL = 168 * time.Hour

// Service implements domain.EmbeddingService on top of a langchaingo embedder.
// When a cache is set, vectors are stored gob-encoded under a key derived
// from the source name and the sha256 of the text.
type Service struct {
	embedder embeddings.Embedder
	source   string
	cache    domain.Cache
	cacheTTL time.Duration
	sfGroup  singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the read-through cache. A nil cache leaves caching off.
func WithCache(c domain.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		s.cacheTTL = ttl
	}
}

// NewService wraps an already constructed embedder.
func NewService(embedder embeddings.Embedder, source string, opts ...Option) (*Service, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if source == "" {
		return nil, fmt.Errorf("embedding source name cannot be empty")
	}
	s := &Service{
		embedder: embedder,
		source:   source,
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate creates an embedding for a single text.
func (s *Service) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}

	cacheKey := s.cacheKey(text)
	if vec, ok := s.lookup(ctx, cacheKey); ok {
		return vec, nil
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		vec, fetchErr := s.embedder.EmbedQuery(ctx, text)
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to generate embedding using %s: %w", s.source, fetchErr)
		}
		if len(vec) == 0 {
			return nil, fmt.Errorf("received empty embedding from %s without error", s.source)
		}
		s.store(ctx, cacheKey, vec)
		return vec, nil
	})
	if err != nil {
		return nil, err
	}

	vec, ok := res.([]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for %s embedding: %T", s.source, res)
	}
	return vec, nil
}

// GenerateBatch embeds texts in one upstream call, skipping texts already cached.
// Empty elements are embedded like any other text.
func (s *Service) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("input texts cannot be empty for embedding")
	}

	result := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		if vec, ok := s.lookup(ctx, s.cacheKey(text)); ok {
			result[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return result, nil
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, missTexts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings using %s: %w", s.source, err)
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("%s returned %d embeddings for %d texts", s.source, len(vectors), len(missTexts))
	}

	for j, i := range missIdx {
		result[i] = vectors[j]
		s.store(ctx, s.cacheKey(missTexts[j]), vectors[j])
	}
	return result, nil
}

func (s *Service) cacheKey(text string) string {
	return cache.GenerateCacheKey("embedding", s.source, cache.HashKey(text))
}

// lookup never fails the caller: any cache or decode error is a miss.
func (s *Service) lookup(ctx context.Context, key string) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Embedding cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var vec []float32
	if err := gob.NewDecoder(bytes.NewReader([]byte(data))).Decode(&vec); err != nil || len(vec) == 0 {
		logger.Get().Warn("Failed to decode cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	logger.Get().Debug("Embedding cache hit", zap.String("key", key))
	return vec, true
}

func (s *Service) store(ctx context.Context, key string, vec []float32) {
	if s.cache == nil {
		return
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(vec); err != nil {
		logger.Get().Warn("Failed to gob encode embedding for caching", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, buf.String(), s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to write embedding to cache", zap.String("key", key), zap.Error(err))
	}
}

// Ensure Service implements EmbeddingService
var _ domain.EmbeddingService = (*Service)(nil)
