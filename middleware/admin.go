// middleware/admin.go
package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const LocalAdminActor = "admin_actor"

// AdminAuthMiddleware validates the admin Bearer token. An empty expected token
// disables the admin surface entirely.
func AdminAuthMiddleware(expectedToken string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "admin access is not configured",
			})
		}

		token := bearer(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			logger.Warn("[ADMIN_AUTH] Missing admin token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "admin token missing",
			})
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			logger.Warn("[ADMIN_AUTH] Invalid admin token",
				zap.String("path", c.Path()), zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid admin token",
			})
		}

		actor := utils.CopyString(c.Get("X-Admin-Actor"))
		if actor == "" {
			actor = "admin"
		}
		c.Locals(LocalAdminActor, actor)
		return c.Next()
	}
}
