package middleware

import (
	"errors"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps service sentinels to HTTP statuses. Client errors keep their message,
// server errors are replaced by fallback.
func StatusFor(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrRecordNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidIndex),
		errors.Is(err, services.ErrInvalidKind):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict, "The room was modified concurrently, please retry"
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "Authentication required"
	case errors.Is(err, services.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable, "Storage is temporarily unavailable"
	case errors.Is(err, services.ErrPartialCascade):
		return fiber.StatusInternalServerError, services.ErrPartialCascade.Error()
	default:
		return fiber.StatusInternalServerError, fallback
	}
}
