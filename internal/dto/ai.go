package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EmbeddingInput is either a single text or a list of texts.
type EmbeddingInput struct {
	Texts   []string
	IsBatch bool
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (in *EmbeddingInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*in = EmbeddingInput{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*in = EmbeddingInput{Texts: []string{s}}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if list == nil {
			list = []string{}
		}
		*in = EmbeddingInput{Texts: list, IsBatch: true}
		return nil
	default:
		return fmt.Errorf("input must be a string or a list of strings")
	}
}

// MarshalJSON writes the input back in the shape it was received.
func (in EmbeddingInput) MarshalJSON() ([]byte, error) {
	if in.IsBatch {
		if in.Texts == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(in.Texts)
	}
	if len(in.Texts) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(in.Texts[0])
}

// EmbeddingRequest represents the body of POST /embed
// @Description Text or list of texts to embed
type EmbeddingRequest struct {
	Input EmbeddingInput `json:"input" swaggertype:"string" example:"Como solicito reembolso?"`
}

// EmbeddingResponse holds a single vector for a string input, or one
// vector per text (in input order) for a list input.
type EmbeddingResponse struct {
	Embedding interface{} `json:"embedding" swaggertype:"array,number"`
}

// GenerationRequest represents the body of POST /generate
// @Description Question answered strictly from the given context
type GenerationRequest struct {
	Context  string `json:"context" example:"O reembolso deve ser solicitado em até 30 dias."`
	Question string `json:"question" example:"Qual o prazo para pedir reembolso?"`
}

type GenerationResponse struct {
	Answer string `json:"answer"`
}

// KeywordExtractionRequest represents the body of POST /extract-keywords
type KeywordExtractionRequest struct {
	Text string `json:"text" example:"Como faço para solicitar reembolso de despesas de viagem?"`
}

type KeywordExtractionResponse struct {
	Keywords []string `json:"keywords"`
}

// MultiCategorizationRequest classifies one text against several named label sets
// @Description Text plus named sets of candidate labels
type MultiCategorizationRequest struct {
	Text      string              `json:"text" example:"Meu notebook não liga."`
	LabelSets map[string][]string `json:"label_sets"`
}

// CategorizationResult is the winning label of one label set
type CategorizationResult struct {
	PredictedCategory string  `json:"predicted_category"`
	ConfidenceScore   float64 `json:"confidence_score"`
}

type MultiCategorizationResponse struct {
	Results map[string]CategorizationResult `json:"results"`
}

// SimilarityRequest represents the body of POST /similarity
type SimilarityRequest struct {
	Question   string   `json:"question"`
	Paragraphs []string `json:"paragraphs"`
}

// RelevanceRequest represents the body of POST /relevance
type RelevanceRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type BooleanResponse struct {
	Result bool `json:"result"`
}

// HealthResponse is returned by GET /
type HealthResponse struct {
	Status string `json:"status" example:"Serviço de IA online"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Detail string `json:"detail"`
}
