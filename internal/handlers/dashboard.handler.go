package handlers

import (
	"inventory/internal/app"
	dashboardController "inventory/internal/controllers/dashboard"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Handler
	dashboardController dashboardController.DashboardControllerInterface
}

func NewDashboardHandler(app app.App, router fiber.Router) *DashboardHandler {
	log := logger.New("handlers").File("dashboard_handler")
	return &DashboardHandler{
		dashboardController: app.Controllers.Dashboard,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *DashboardHandler) Register() {
	h.router.Get("/dashboard", h.getStats)
}

func (h *DashboardHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.dashboardController.GetStats(c.UserContext())
	if err != nil {
		return h.respondError(c, err, "Failed to compute dashboard")
	}

	return c.JSON(fiber.Map{"stats": stats})
}
