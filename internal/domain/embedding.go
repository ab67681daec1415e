package domain

import (
	"context"
)

// EmbeddingService defines the interface for generating text embeddings.
type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	// GenerateBatch returns one vector per input text, in input order.
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)
}
