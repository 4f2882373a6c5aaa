// handlers/submission.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sourcing-trainer/services"
)

type submissionRequest struct {
	Submission string `json:"submission"`
}

func SetupSubmissionRoutes(secured fiber.Router, eval *services.EvaluationService, logger *zap.Logger) {
	secured.Post("/games/:id/submissions", func(c *fiber.Ctx) error {
		var req submissionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		res, err := eval.Evaluate(c.UserContext(), sessionToken(c), c.Params("id"), req.Submission)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})
}
