// handlers/admin.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"sourcing-trainer/middleware"
	"sourcing-trainer/models"
	"sourcing-trainer/services"
)

type overrideRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Task        *string `json:"task"`
	Active      *bool   `json:"active"`
	Featured    *bool   `json:"featured"`
}

func SetupAdminRoutes(app fiber.Router, catalog *services.GameCatalog, adminToken string, logger *zap.Logger) {
	admin := app.Group("/admin", middleware.AdminAuthMiddleware(adminToken, logger))

	admin.Put("/games/:id/override", func(c *fiber.Ctx) error {
		var req overrideRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		actor, _ := c.Locals(middleware.LocalAdminActor).(string)
		o := &models.GameOverride{
			GameID:      fiberutils.CopyString(c.Params("id")),
			Title:       req.Title,
			Description: req.Description,
			Task:        req.Task,
			Active:      req.Active,
			Featured:    req.Featured,
			UpdatedBy:   actor,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := catalog.SetOverride(c.UserContext(), o); err != nil {
			return respondError(c, logger, err)
		}
		logger.Info("[AUDIT] Game override updated",
			zap.String("game_id", o.GameID),
			zap.String("actor", actor),
			zap.Any("override", req))

		g, _ := catalog.Lookup(o.GameID)
		return c.JSON(g)
	})
}
