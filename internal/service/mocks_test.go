package service

import (
	"context"

	"chatbot-ai/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockEmbeddingService ---
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbeddingService) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

// --- MockAnswerGenerator ---
type MockAnswerGenerator struct {
	mock.Mock
}

func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, question, contextText string) (string, error) {
	args := m.Called(ctx, question, contextText)
	return args.String(0), args.Error(1)
}

// --- MockKeywordExtractor ---
type MockKeywordExtractor struct {
	mock.Mock
}

func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockZeroShotClassifier ---
type MockZeroShotClassifier struct {
	mock.Mock
}

func (m *MockZeroShotClassifier) Classify(ctx context.Context, req domain.ClassificationRequest) ([]domain.LabelScore, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LabelScore), args.Error(1)
}
