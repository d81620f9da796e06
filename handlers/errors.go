package handlers

import (
	"errors"

	"vocab-review-system/services"

	"github.com/gofiber/fiber/v2"
)

// failWith maps service error kinds onto HTTP statuses: validation → 400,
// missing rows → 404, post-retry conflicts → 409, storage trouble → 503.
func failWith(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	var conflict *services.ConflictError
	var transient *services.TransientError

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validation.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not found",
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": conflict.Error(),
		})
	case errors.As(err, &transient):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":     "storage temporarily unavailable",
			"retryable": true,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
			"cause": err.Error(),
		})
	}
}
