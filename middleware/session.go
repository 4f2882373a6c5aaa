// middleware/session.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const LocalSessionToken = "session_token"

// SessionMiddleware extracts the player's session token for routes under /s/.
// The token is read from X-Session-Token, falling back to "Authorization: Bearer".
// It is only checked for presence here; services resolve it to a player.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}
		c.Locals(LocalSessionToken, token)
		return c.Next()
	}
}

// SessionToken returns the raw credential sent with the request, if any.
func SessionToken(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Get("X-Session-Token")); token != "" {
		return token
	}
	return bearer(c.Get(fiber.HeaderAuthorization))
}

func bearer(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
