package catalog

import (
	"errors"

	"movies-app/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WriteError maps a service error to an HTTP status and a JSON body.
// Unexpected errors are logged and answered with 500.
func WriteError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var (
		verr *ValidationError
		perr *reconcile.ParseError
	)

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.As(err, &perr),
		errors.Is(err, reconcile.ErrInvalidReference),
		errors.Is(err, ErrBadRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrInconsistentState):
		l.Warn("Link state changed during update", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
