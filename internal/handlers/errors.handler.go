package handlers

import (
	"inventory/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) respondError(c *fiber.Ctx, err error, fallback string) error {
	status, message := middleware.StatusFor(err, fallback)
	if status >= fiber.StatusInternalServerError {
		h.log.TraceFromContext(c.UserContext()).Er(fallback, err, "path", c.Path())
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
