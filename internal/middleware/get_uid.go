package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const LocalUserID = "user_id"

// UIDFromLocals returns the caller id set by Authenticate.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals(LocalUserID).(string)
	if uid == "" {
		return "", fiber.ErrUnauthorized
	}
	return uid, nil
}
