// handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sourcing-trainer/services"
)

// statusFor maps a service error to an HTTP status and a message safe to show players.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrAuth):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrGrading):
		return fiber.StatusBadGateway, "grading is temporarily unavailable, please try again"
	case errors.Is(err, services.ErrPersistence):
		return fiber.StatusInternalServerError, "your result could not be saved, please submit again"
	}
	return fiber.StatusInternalServerError, "internal server error"
}

func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
