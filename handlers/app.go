// handlers/app.go
package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"sourcing-trainer/middleware"
	"sourcing-trainer/services"
	"sourcing-trainer/utils"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Catalog        *services.GameCatalog
	Achievements   *services.AchievementEngine
	Players        *services.PlayerService
	Evaluation     *services.EvaluationService
	Leaderboards   *services.LeaderboardService
	AdminToken     string
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewApp builds the Fiber application with every route mounted.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "sourcing-trainer",
		BodyLimit: 64 * 1024,
		Immutable: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(utils.RequestLogger(d.Logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(d.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-Session-Token",
		MaxAge:       86400,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	secured := app.Group("/s", middleware.SessionMiddleware())

	SetupGameRoutes(app, d.Catalog, d.Achievements, d.Logger)
	SetupLeaderboardRoutes(app, d.Leaderboards, d.Logger)
	SetupPlayerRoutes(app, secured, d.Players, d.Logger)
	SetupSubmissionRoutes(secured, d.Evaluation, d.Logger)
	SetupAdminRoutes(app, d.Catalog, d.AdminToken, d.Logger)

	return app
}
