package middleware

import (
	"strings"

	"inventory/internal/types"

	"github.com/gofiber/fiber/v2"
)

const (
	PlatformHeader       = "Sec-CH-UA-Platform"
	PlatformHeaderLegacy = "X-Platform"
)

// RequireAuth validates the bearer token, loads the caller's profile and stores the
// acting user in the request context.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.Function("RequireAuth").TraceFromContext(c.UserContext())

		scheme, token, found := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			log.Info("missing or malformed authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		user, err := m.auth.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			status, message := StatusFor(err, "Invalid token")
			if status == fiber.StatusServiceUnavailable {
				log.Er("failed to load user profile", err)
			} else {
				log.Info("authentication failed", "error", err.Error())
				status, message = fiber.StatusUnauthorized, "Invalid token"
			}
			return c.Status(status).JSON(fiber.Map{
				"error": message,
			})
		}

		actor := types.NewActor(user, c.Get(fiber.HeaderUserAgent), platform(c))
		c.SetUserContext(types.WithActor(c.UserContext(), actor))

		return c.Next()
	}
}

func platform(c *fiber.Ctx) string {
	if value := strings.Trim(c.Get(PlatformHeader), `"`); value != "" {
		return value
	}
	return c.Get(PlatformHeaderLegacy)
}
