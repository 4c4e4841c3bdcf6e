package handlers

import (
	"inventory/internal/app"
	activityController "inventory/internal/controllers/activity"
	"inventory/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ActivityHandler struct {
	Handler
	activityController activityController.ActivityControllerInterface
}

func NewActivityHandler(app app.App, router fiber.Router) *ActivityHandler {
	log := logger.New("handlers").File("activity_handler")
	return &ActivityHandler{
		activityController: app.Controllers.Activity,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ActivityHandler) Register() {
	h.router.Get("/activity", h.query)
}

func (h *ActivityHandler) query(c *fiber.Ctx) error {
	filter := types.ActivityFilter{
		Type:   c.Query("type"),
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	page, err := h.activityController.Query(c.UserContext(), filter)
	if err != nil {
		return h.respondError(c, err, "Failed to load activity")
	}

	return c.JSON(fiber.Map{
		"entries": page.Entries,
		"total":   page.Total,
	})
}
