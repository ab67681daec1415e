package embedding

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"testing"
	"time"

	"chatbot-ai/internal/cache"
	"chatbot-ai/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmbedder is a mock type for the embeddings.Embedder interface
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockCache is a mock type for domain.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.Cache = (*MockCache)(nil)

func gobString(t *testing.T, vec []float32) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(vec))
	return buf.String()
}

func keyFor(text string) string {
	return cache.GenerateCacheKey("embedding", "test", cache.HashKey(text))
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil, "test")
	assert.ErrorContains(t, err, "embedder cannot be nil")

	_, err = NewService(new(MockEmbedder), "")
	assert.ErrorContains(t, err, "source name cannot be empty")

	s, err := NewService(new(MockEmbedder), "test", WithCache(new(MockCache), 0))
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, s.cacheTTL, "non-positive TTL falls back to default")
}

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	text := "Como solicito férias?"
	vec := []float32{0.1, 0.2, 0.3}
	ttl := time.Hour

	t.Run("success without cache", func(t *testing.T) {
		emb := new(MockEmbedder)
		s, _ := NewService(emb, "test")
		emb.On("EmbedQuery", ctx, text).Return(vec, nil).Once()

		got, err := s.Generate(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, vec, got)
		emb.AssertExpectations(t)
	})

	t.Run("empty text", func(t *testing.T) {
		s, _ := NewService(new(MockEmbedder), "test")
		_, err := s.Generate(ctx, "")
		assert.ErrorContains(t, err, "input text cannot be empty")
	})

	t.Run("embedder error", func(t *testing.T) {
		emb := new(MockEmbedder)
		s, _ := NewService(emb, "test")
		upstream := errors.New("model not loaded")
		emb.On("EmbedQuery", ctx, text).Return(nil, upstream).Once()

		_, err := s.Generate(ctx, text)
		assert.ErrorIs(t, err, upstream)
		assert.ErrorContains(t, err, "failed to generate embedding using test")
	})

	t.Run("empty vector from embedder", func(t *testing.T) {
		emb := new(MockEmbedder)
		s, _ := NewService(emb, "test")
		emb.On("EmbedQuery", ctx, text).Return([]float32{}, nil).Once()

		_, err := s.Generate(ctx, text)
		assert.ErrorContains(t, err, "empty embedding")
	})

	t.Run("cache hit skips embedder", func(t *testing.T) {
		emb := new(MockEmbedder)
		c := new(MockCache)
		s, _ := NewService(emb, "test", WithCache(c, ttl))
		c.On("Get", ctx, keyFor(text)).Return(gobString(t, vec), nil).Once()

		got, err := s.Generate(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, vec, got)
		emb.AssertNotCalled(t, "EmbedQuery", mock.Anything, mock.Anything)
		c.AssertExpectations(t)
	})

	t.Run("cache miss stores result", func(t *testing.T) {
		emb := new(MockEmbedder)
		c := new(MockCache)
		s, _ := NewService(emb, "test", WithCache(c, ttl))
		c.On("Get", ctx, keyFor(text)).Return("", domain.ErrCacheMiss).Once()
		emb.On("EmbedQuery", ctx, text).Return(vec, nil).Once()
		c.On("Set", ctx, keyFor(text), gobString(t, vec), ttl).Return(nil).Once()

		got, err := s.Generate(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, vec, got)
		emb.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("cache read error falls through", func(t *testing.T) {
		emb := new(MockEmbedder)
		c := new(MockCache)
		s, _ := NewService(emb, "test", WithCache(c, ttl))
		c.On("Get", ctx, keyFor(text)).Return("", errors.New("connection reset")).Once()
		emb.On("EmbedQuery", ctx, text).Return(vec, nil).Once()
		c.On("Set", ctx, keyFor(text), gobString(t, vec), ttl).Return(errors.New("connection reset")).Once()

		got, err := s.Generate(ctx, text)
		require.NoError(t, err, "cache failures never fail the request")
		assert.Equal(t, vec, got)
		c.AssertExpectations(t)
	})

	t.Run("corrupt cache entry falls through", func(t *testing.T) {
		emb := new(MockEmbedder)
		c := new(MockCache)
		s, _ := NewService(emb, "test", WithCache(c, ttl))
		c.On("Get", ctx, keyFor(text)).Return("invalid gob data", nil).Once()
		emb.On("EmbedQuery", ctx, text).Return(vec, nil).Once()
		c.On("Set", ctx, keyFor(text), gobString(t, vec), ttl).Return(nil).Once()

		got, err := s.Generate(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, vec, got)
		emb.AssertExpectations(t)
	})
}

func TestService_GenerateBatch(t *testing.T) {
	ctx := context.Background()
	ttl := time.Hour

	t.Run("mixes cached and fresh vectors in input order", func(t *testing.T) {
		emb := new(MockEmbedder)
		c := new(MockCache)
		s, _ := NewService(emb, "test", WithCache(c, ttl))

		texts := []string{"primeiro", "segundo", "terceiro"}
		cached := []float32{1, 1}
		fresh := [][]float32{{2, 2}, {3, 3}}

		c.On("Get", ctx, keyFor("primeiro")).Return("", domain.ErrCacheMiss).Once()
		c.On("Get", ctx, keyFor("segundo")).Return(gobString(t, cached), nil).Once()
		c.On("Get", ctx, keyFor("terceiro")).Return("", domain.ErrCacheMiss).Once()
		emb.On("EmbedDocuments", ctx, []string{"primeiro", "terceiro"}).Return(fresh, nil).Once()
		c.On("Set", ctx, keyFor("primeiro"), gobString(t, fresh[0]), ttl).Return(nil).Once()
		c.On("Set", ctx, keyFor("terceiro"), gobString(t, fresh[1]), ttl).Return(nil).Once()

		got, err := s.GenerateBatch(ctx, texts)
		require.NoError(t, err)
		assert.Equal(t, [][]float32{{2, 2}, {1, 1}, {3, 3}}, got)
		emb.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("all cached", func(t *testing.T) {
		emb := new(MockEmbedder)
		c := new(MockCache)
		s, _ := NewService(emb, "test", WithCache(c, ttl))
		c.On("Get", ctx, keyFor("a")).Return(gobString(t, []float32{1}), nil).Once()

		got, err := s.GenerateBatch(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, [][]float32{{1}}, got)
		emb.AssertNotCalled(t, "EmbedDocuments", mock.Anything, mock.Anything)
	})

	t.Run("empty input", func(t *testing.T) {
		s, _ := NewService(new(MockEmbedder), "test")
		_, err := s.GenerateBatch(ctx, nil)
		assert.ErrorContains(t, err, "cannot be empty")
	})

	t.Run("empty element is embedded", func(t *testing.T) {
		emb := new(MockEmbedder)
		s, _ := NewService(emb, "test")
		emb.On("EmbedDocuments", ctx, []string{"ok", ""}).Return([][]float32{{1}, {0}}, nil).Once()

		got, err := s.GenerateBatch(ctx, []string{"ok", ""})
		require.NoError(t, err)
		assert.Equal(t, [][]float32{{1}, {0}}, got)
		emb.AssertExpectations(t)
	})

	t.Run("count mismatch", func(t *testing.T) {
		emb := new(MockEmbedder)
		s, _ := NewService(emb, "test")
		emb.On("EmbedDocuments", ctx, []string{"a", "b"}).Return([][]float32{{1}}, nil).Once()

		_, err := s.GenerateBatch(ctx, []string{"a", "b"})
		assert.ErrorContains(t, err, "returned 1 embeddings for 2 texts")
	})

	t.Run("embedder error", func(t *testing.T) {
		emb := new(MockEmbedder)
		s, _ := NewService(emb, "test")
		upstream := errors.New("rate limited")
		emb.On("EmbedDocuments", ctx, []string{"a"}).Return(nil, upstream).Once()

		_, err := s.GenerateBatch(ctx, []string{"a"})
		assert.ErrorIs(t, err, upstream)
	})
}

func TestConstructors_Validation(t *testing.T) {
	_, err := NewOllamaEmbeddingService("", "nomic-embed-text")
	assert.ErrorContains(t, err, "ollama server URL cannot be empty")

	_, err = NewOllamaEmbeddingService("http://localhost:11434", "")
	assert.ErrorContains(t, err, "ollama model name cannot be empty")

	_, err = NewOpenAIEmbeddingService("", "", "")
	assert.ErrorContains(t, err, "openai API key cannot be empty")

	_, err = NewHuggingFaceEmbeddingService("", "sentence-transformers/all-MiniLM-L6-v2")
	assert.ErrorContains(t, err, "huggingface API token cannot be empty")

	_, err = NewHuggingFaceEmbeddingService("hf_token", "")
	assert.ErrorContains(t, err, "huggingface model name cannot be empty")
}

func TestNewOllamaEmbeddingService_Success(t *testing.T) {
	// Construction does not contact the server.
	s, err := NewOllamaEmbeddingService("http://localhost:11434", "nomic-embed-text")
	require.NoError(t, err)
	assert.Equal(t, "ollama", s.source)
}
