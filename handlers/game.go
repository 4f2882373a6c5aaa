// handlers/game.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sourcing-trainer/services"
)

func SetupGameRoutes(app fiber.Router, catalog *services.GameCatalog, engine *services.AchievementEngine, logger *zap.Logger) {
	app.Get("/games", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"games": catalog.List(false)})
	})

	app.Get("/games/:id", func(c *fiber.Ctx) error {
		g, err := catalog.Get(c.Params("id"))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(g)
	})

	app.Get("/achievements", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"achievements": engine.Definitions()})
	})
}
