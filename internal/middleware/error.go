package middleware

import (
	"errors"
	"net/http"

	"chatbot-ai/internal/domain"
	"chatbot-ai/internal/dto"
	"chatbot-ai/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the centralized fiber error handler. Every error is
// rendered as {"detail": "..."}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get().With(
			zap.String("path", c.Path()),
			zap.String("request_id", RequestIDFromCtx(c)),
		)

		// Handle validation errors, reporting the first violation
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			logger.Warn("Validation errors occurred", zap.Int("error_count", len(validationErrs)))
			return writeDetail(c, http.StatusBadRequest, validationErrs[0].Message)
		}
		var validationErr domain.ValidationError
		if errors.As(err, &validationErr) {
			logger.Warn("Validation error occurred", zap.String("field", validationErr.Field))
			return writeDetail(c, http.StatusBadRequest, validationErr.Message)
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			}
			if statusCode >= http.StatusInternalServerError {
				logger.Error(domainErr.Message, fields...)
			} else {
				logger.Warn(domainErr.Message, fields...)
			}

			detail := domainErr.Message
			if statusCode == http.StatusInternalServerError {
				detail = domainErr.Error()
			}
			return writeDetail(c, statusCode, detail)
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return writeDetail(c, fiberErr.Code, fiberErr.Message)
		}

		// Handle unknown errors
		logger.Error("Unknown error occurred", zap.Error(err))
		return writeDetail(c, http.StatusInternalServerError, err.Error())
	}
}

func writeDetail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Detail: detail})
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeInvalidInput, domain.CodeValidation,
		domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
