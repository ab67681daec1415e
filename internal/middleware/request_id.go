package middleware

import (
	"chatbot-ai/internal/util"

	"github.com/gofiber/fiber/v2"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestID" // Key for storing the request ID in fiber.Ctx locals
)

// RequestID propagates a caller-supplied X-Request-ID or assigns a new ULID,
// and echoes it on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = util.NewULID()
		}
		c.Locals(RequestIDKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// RequestIDFromCtx returns the request ID stored by RequestID, or "".
func RequestIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}
