package middleware

import (
	"memories-server/dto"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth rejects requests that reached it without a caller id. A token
// that Authenticate refused is reported as invalid rather than missing.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := UIDFromLocals(c); err == nil {
			return c.Next()
		}
		msg := "Unauthenticated"
		if _, rejected := c.Locals(localAuthError).(error); rejected {
			msg = "invalid token"
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: msg})
	}
}
