package handler

import (
	"chatbot-ai/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const healthStatus = "Serviço de IA online"

// HealthHandler answers liveness checks
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root godoc
// @Summary Health check
// @Description Reports that the service is up
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: healthStatus})
}
