package embedding

import (
	"fmt"

	hfembeddings "github.com/tmc/langchaingo/embeddings/huggingface"
	hfLLM "github.com/tmc/langchaingo/llms/huggingface"
)

// NewHuggingFaceEmbeddingService creates an embedding service for a
// sentence-transformers model served by the Hugging Face inference API.
func NewHuggingFaceEmbeddingService(apiToken, modelName string, opts ...Option) (*Service, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("huggingface API token cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("huggingface model name cannot be empty")
	}

	client, err := hfLLM.New(
		hfLLM.WithToken(apiToken),
		hfLLM.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Hugging Face client for embedder: %w", err)
	}

	embedder, err := hfembeddings.NewHuggingface(
		hfembeddings.WithClient(*client),
		hfembeddings.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Hugging Face embedder: %w", err)
	}

	return NewService(embedder, "huggingface", opts...)
}
