// handlers/player.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sourcing-trainer/middleware"
	"sourcing-trainer/models"
	"sourcing-trainer/services"
)

type registerRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// sessionResponse is the only place a session token is ever serialized.
func sessionResponse(p *models.Player) fiber.Map {
	return fiber.Map{
		"player":        p,
		"session_token": p.SessionToken,
		"has_pin":       p.HasPIN(),
		"progress":      services.ProgressFor(p.Score),
	}
}

func SetupPlayerRoutes(app fiber.Router, secured fiber.Router, players *services.PlayerService, logger *zap.Logger) {
	app.Post("/players", func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		p, err := players.Register(c.UserContext(), req.Name, req.PIN)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sessionResponse(p))
	})

	app.Post("/players/claim", func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		p, err := players.Claim(c.UserContext(), req.Name, req.PIN)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(sessionResponse(p))
	})

	secured.Get("/players/me", func(c *fiber.Ctx) error {
		p, err := players.Profile(c.UserContext(), sessionToken(c))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(fiber.Map{
			"player":   p,
			"has_pin":  p.HasPIN(),
			"progress": services.ProgressFor(p.Score),
		})
	})

	secured.Put("/players/me/pin", func(c *fiber.Ctx) error {
		var req setPINRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := players.SetPIN(c.UserContext(), sessionToken(c), req.PIN); err != nil {
			return respondError(c, logger, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func sessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals(middleware.LocalSessionToken).(string)
	return token
}
