package handler

import (
	"errors"

	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/dto"
	"chatbot-ai/internal/logger"
	"chatbot-ai/internal/service"
	"chatbot-ai/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AIHandler handles the model-backed HTTP endpoints
type AIHandler struct {
	service   service.AIService
	validator *validation.Validator
}

// NewAIHandler creates a new AIHandler instance
func NewAIHandler(service service.AIService) *AIHandler {
	return &AIHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// parseBody decodes the JSON body into out; malformed bodies are a 400.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logger.Get().Warn("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido: "+err.Error())
	}
	return nil
}

func validationError(errs domain.ValidationErrors) error {
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// withServerErrorPrefix prefixes the detail of errors that end up as a 500.
// Client errors and an unavailable model keep their own message.
func withServerErrorPrefix(err error, prefix string) error {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}

	code := domain.CodeInternal
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
			domain.CodeInvalidFormat, domain.CodeOutOfRange, domain.CodeModelUnavailable:
			return err
		}
		code = domainErr.Code
	}
	return domain.NewError(code, prefix, err)
}

// Embed godoc
// @Summary Generate embeddings
// @Description Embeds a text, or a list of texts in order
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.EmbeddingRequest true "Text or list of texts"
// @Success 200 {object} dto.EmbeddingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /embed [post]
func (h *AIHandler) Embed(c *fiber.Ctx) error {
	var req dto.EmbeddingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validationError(h.validator.ValidateEmbeddingRequest(&req)); err != nil {
		return err
	}

	if !req.Input.IsBatch {
		vector, err := h.service.Embed(c.UserContext(), req.Input.Texts[0])
		if err != nil {
			return err
		}
		return c.JSON(dto.EmbeddingResponse{Embedding: vector})
	}

	vectors, err := h.service.EmbedBatch(c.UserContext(), req.Input.Texts)
	if err != nil {
		return err
	}
	return c.JSON(dto.EmbeddingResponse{Embedding: vectors})
}

// Generate godoc
// @Summary Answer a question from a context
// @Description Returns the model's answer, or [NO_ANSWER] when the context does not contain it
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.GenerationRequest true "Context and question"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate [post]
func (h *AIHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validationError(h.validator.ValidateGenerationRequest(&req)); err != nil {
		return err
	}

	answer, err := h.service.Generate(c.UserContext(), req.Question, req.Context)
	if err != nil {
		return err
	}
	return c.JSON(dto.GenerationResponse{Answer: answer})
}

// ExtractKeywords godoc
// @Summary Extract keywords
// @Description Returns the keywords of a text; an empty list when the model reply cannot be parsed
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.KeywordExtractionRequest true "Text"
// @Success 200 {object} dto.KeywordExtractionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /extract-keywords [post]
func (h *AIHandler) ExtractKeywords(c *fiber.Ctx) error {
	var req dto.KeywordExtractionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validationError(h.validator.ValidateKeywordExtractionRequest(&req)); err != nil {
		return err
	}

	keywords, err := h.service.ExtractKeywords(c.UserContext(), req.Text)
	if err != nil {
		return withServerErrorPrefix(err, "Erro interno no servidor")
	}
	if keywords == nil {
		keywords = []string{}
	}
	return c.JSON(dto.KeywordExtractionResponse{Keywords: keywords})
}

// CheckSimilarity godoc
// @Summary Question/paragraph similarity
// @Description True when any paragraph's embedding has cosine similarity > 0.5 with the question
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.SimilarityRequest true "Question and paragraphs"
// @Success 200 {object} dto.BooleanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /similarity [post]
func (h *AIHandler) CheckSimilarity(c *fiber.Ctx) error {
	var req dto.SimilarityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validationError(h.validator.ValidateSimilarityRequest(&req)); err != nil {
		return err
	}

	result, err := h.service.CheckSimilarity(c.UserContext(), req.Question, req.Paragraphs)
	if err != nil {
		return err
	}
	return c.JSON(dto.BooleanResponse{Result: result})
}

// CheckRelevance godoc
// @Summary Context relevance
// @Description True when the zero-shot classifier scores the question as answered by the context above 0.5
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.RelevanceRequest true "Question and context"
// @Success 200 {object} dto.BooleanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /relevance [post]
func (h *AIHandler) CheckRelevance(c *fiber.Ctx) error {
	var req dto.RelevanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validationError(h.validator.ValidateRelevanceRequest(&req)); err != nil {
		return err
	}

	result, err := h.service.CheckRelevance(c.UserContext(), req.Question, req.Context)
	if err != nil {
		return err
	}
	return c.JSON(dto.BooleanResponse{Result: result})
}

// Categorize godoc
// @Summary Zero-shot categorization
// @Description Picks the best label of every named label set
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.MultiCategorizationRequest true "Text and label sets"
// @Success 200 {object} dto.MultiCategorizationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /categorize [post]
func (h *AIHandler) Categorize(c *fiber.Ctx) error {
	var req dto.MultiCategorizationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validationError(h.validator.ValidateCategorizationRequest(&req)); err != nil {
		return err
	}

	predictions, err := h.service.Categorize(c.UserContext(), req.Text, req.LabelSets)
	if err != nil {
		return withServerErrorPrefix(err, "Erro ao categorizar texto")
	}

	results := make(map[string]dto.CategorizationResult, len(predictions))
	for name, p := range predictions {
		results[name] = dto.CategorizationResult{
			PredictedCategory: p.PredictedCategory,
			ConfidenceScore:   p.ConfidenceScore,
		}
	}
	return c.JSON(dto.MultiCategorizationResponse{Results: results})
}
