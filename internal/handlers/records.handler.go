package handlers

import (
	"strconv"

	"inventory/internal/app"
	recordsController "inventory/internal/controllers/records"
	"inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type RecordsHandler struct {
	Handler
	recordsController recordsController.RecordsControllerInterface
}

func NewRecordsHandler(app app.App, router fiber.Router) *RecordsHandler {
	log := logger.New("handlers").File("records_handler")
	return &RecordsHandler{
		recordsController: app.Controllers.Records,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RecordsHandler) Register() {
	for _, kind := range []models.RecordKind{models.RecordKindMaintenance, models.RecordKindReplacement} {
		records := h.router.Group("/rooms/:id/" + string(kind))
		records.Get("", h.list(kind))
		records.Post("", h.appendRecord(kind))
		records.Post("/id/:recordId/resolve", h.resolveByID(kind))
		records.Delete("/id/:recordId", h.removeByID(kind))
		records.Post("/:index/resolve", h.resolve(kind))
		records.Delete("/:index", h.remove(kind))
	}
}

func (h *RecordsHandler) list(kind models.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := h.recordsController.List(c.UserContext(), c.Params("id"), kind)
		if err != nil {
			return h.respondError(c, err, "Failed to list records")
		}

		return c.JSON(fiber.Map{"records": records})
	}
}

func (h *RecordsHandler) appendRecord(kind models.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req recordsController.AppendRecordRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		record, err := h.recordsController.Append(c.UserContext(), c.Params("id"), kind, &req)
		if err != nil {
			return h.respondError(c, err, "Failed to add record")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"record": record})
	}
}

func (h *RecordsHandler) resolve(kind models.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid record index",
			})
		}

		record, err := h.recordsController.Resolve(c.UserContext(), c.Params("id"), kind, index)
		if err != nil {
			return h.respondError(c, err, "Failed to resolve record")
		}

		return c.JSON(fiber.Map{"record": record})
	}
}

func (h *RecordsHandler) remove(kind models.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid record index",
			})
		}

		record, err := h.recordsController.Remove(c.UserContext(), c.Params("id"), kind, index)
		if err != nil {
			return h.respondError(c, err, "Failed to remove record")
		}

		return c.JSON(fiber.Map{"record": record})
	}
}

func (h *RecordsHandler) resolveByID(kind models.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := h.recordsController.ResolveByID(c.UserContext(), c.Params("id"), kind, c.Params("recordId"))
		if err != nil {
			return h.respondError(c, err, "Failed to resolve record")
		}

		return c.JSON(fiber.Map{"record": record})
	}
}

func (h *RecordsHandler) removeByID(kind models.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := h.recordsController.RemoveByID(c.UserContext(), c.Params("id"), kind, c.Params("recordId"))
		if err != nil {
			return h.respondError(c, err, "Failed to remove record")
		}

		return c.JSON(fiber.Map{"record": record})
	}
}
