package embedding

import (
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	openaiLLM "github.com/tmc/langchaingo/llms/openai"
)

const defaultOpenAIEmbeddingModel = "text-embedding-3-small"

// NewOpenAIEmbeddingService creates an embedding service backed by the OpenAI
// embeddings API, or any compatible API when baseURL is set.
func NewOpenAIEmbeddingService(apiKey, modelName, baseURL string, opts ...Option) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		modelName = defaultOpenAIEmbeddingModel
	}

	llmOpts := []openaiLLM.Option{
		openaiLLM.WithToken(apiKey),
		openaiLLM.WithEmbeddingModel(modelName),
	}
	if baseURL != "" {
		llmOpts = append(llmOpts, openaiLLM.WithBaseURL(baseURL))
	}

	llm, err := openaiLLM.New(llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI LLM client for embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic embedder from OpenAI LLM: %w", err)
	}

	return NewService(embedder, "openai", opts...)
}
