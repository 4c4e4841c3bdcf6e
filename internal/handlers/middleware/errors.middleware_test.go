package middleware

import (
	"io"
	"testing"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrNotFound, fiber.StatusNotFound},
		{services.ErrRecordNotFound, fiber.StatusNotFound},
		{services.ErrValidation, fiber.StatusBadRequest},
		{services.ErrInvalidIndex, fiber.StatusBadRequest},
		{services.ErrInvalidKind, fiber.StatusBadRequest},
		{services.ErrConflict, fiber.StatusConflict},
		{services.ErrUnauthenticated, fiber.StatusUnauthorized},
		{services.ErrStoreUnavailable, fiber.StatusServiceUnavailable},
		{services.ErrPartialCascade, fiber.StatusInternalServerError},
		{io.ErrUnexpectedEOF, fiber.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, message := StatusFor(tc.err, "fallback")
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, message)
		})
	}

	_, message := StatusFor(io.ErrUnexpectedEOF, "fallback")
	assert.Equal(t, "fallback", message)
}
