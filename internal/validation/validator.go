package validation

import (
	"strings"

	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/dto"
)

const (
	maxTextLength  = 100000
	maxBatchSize   = 256
	maxLabelSets   = 16
	maxParagraphs  = 512
	maxLabelsInSet = 64
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEmbeddingRequest checks the shape of an embedding request.
// Empty texts are left to the service, which rejects them with its own message.
func (v *Validator) ValidateEmbeddingRequest(req *dto.EmbeddingRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Input.Texts == nil && !req.Input.IsBatch {
		errors = append(errors, domain.NewMissingFieldError("input"))
	} else if len(req.Input.Texts) > maxBatchSize {
		errors = append(errors, domain.NewOutOfRangeError("input", len(req.Input.Texts), 1, maxBatchSize))
	}

	return errors
}

// ValidateGenerationRequest validates a generation request. An empty context
// is allowed; the model answers with the no-answer sentinel.
func (v *Validator) ValidateGenerationRequest(req *dto.GenerationRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = appendRequiredText(errors, "question", req.Question)
	if len(req.Context) > maxTextLength {
		errors = append(errors, domain.NewOutOfRangeError("context", len(req.Context), 0, maxTextLength))
	}

	return errors
}

func (v *Validator) ValidateKeywordExtractionRequest(req *dto.KeywordExtractionRequest) domain.ValidationErrors {
	return appendRequiredText(nil, "text", req.Text)
}

// ValidateCategorizationRequest validates the text and every label set.
func (v *Validator) ValidateCategorizationRequest(req *dto.MultiCategorizationRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = appendRequiredText(errors, "text", req.Text)

	switch {
	case req.LabelSets == nil:
		errors = append(errors, domain.NewMissingFieldError("label_sets"))
	case len(req.LabelSets) > maxLabelSets:
		errors = append(errors, domain.NewOutOfRangeError("label_sets", len(req.LabelSets), 0, maxLabelSets))
	default:
		for name, labels := range req.LabelSets {
			field := "label_sets." + name
			if len(labels) > maxLabelsInSet {
				errors = append(errors, domain.NewOutOfRangeError(field, len(labels), 1, maxLabelsInSet))
				continue
			}
			for _, label := range labels {
				if strings.TrimSpace(label) == "" {
					errors = append(errors, domain.NewInvalidFormatError(field, label))
					break
				}
			}
		}
	}

	return errors
}

// ValidateSimilarityRequest validates a similarity request. An empty
// paragraph list is valid and simply yields false.
func (v *Validator) ValidateSimilarityRequest(req *dto.SimilarityRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = appendRequiredText(errors, "question", req.Question)
	if len(req.Paragraphs) > maxParagraphs {
		errors = append(errors, domain.NewOutOfRangeError("paragraphs", len(req.Paragraphs), 0, maxParagraphs))
	}

	return errors
}

func (v *Validator) ValidateRelevanceRequest(req *dto.RelevanceRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = appendRequiredText(errors, "question", req.Question)
	errors = appendRequiredText(errors, "context", req.Context)

	return errors
}

func appendRequiredText(errors domain.ValidationErrors, field, value string) domain.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return append(errors, domain.NewMissingFieldError(field))
	}
	if len(value) > maxTextLength {
		return append(errors, domain.NewOutOfRangeError(field, len(value), 1, maxTextLength))
	}
	return errors
}
