// handlers/leaderboard.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sourcing-trainer/models"
	"sourcing-trainer/services"
)

const maxLeaderboardLimit = 500

func SetupLeaderboardRoutes(app fiber.Router, lb *services.LeaderboardService, logger *zap.Logger) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		window, err := models.ParseWindow(c.Query("window"))
		if err != nil {
			return badRequest(c, err.Error())
		}
		limit := c.QueryInt("limit", 0)
		if limit < 0 || limit > maxLeaderboardLimit {
			return badRequest(c, "limit must be between 0 and 500")
		}
		entries, err := lb.Leaderboard(c.UserContext(), window, limit)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(fiber.Map{"window": window, "entries": entries})
	})
}
