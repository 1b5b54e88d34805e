package middleware

import (
	"strings"

	"memories-server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const localAuthError = "auth_error"

// Authenticate resolves the caller from an HS256 bearer token. A valid token
// sets Locals(LocalUserID). A missing or rejected token leaves the request
// anonymous so public reads still work; RequireAuth reports the rejection.
func Authenticate(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		claims, err := utils.ParseToken(key, raw)
		if err != nil {
			c.Locals(localAuthError, err)
			return c.Next()
		}

		c.Locals(LocalUserID, claims.CallerID())
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
