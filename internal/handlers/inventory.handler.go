package handlers

import (
	"inventory/internal/app"
	inventoryController "inventory/internal/controllers/inventory"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	Handler
	inventoryController inventoryController.InventoryControllerInterface
}

func NewInventoryHandler(app app.App, router fiber.Router) *InventoryHandler {
	log := logger.New("handlers").File("inventory_handler")
	return &InventoryHandler{
		inventoryController: app.Controllers.Inventory,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *InventoryHandler) Register() {
	floors := h.router.Group("/floors")
	floors.Get("", h.listFloors)
	floors.Post("", h.addFloor)
	floors.Delete("/:id", h.removeFloor)

	rooms := h.router.Group("/rooms")
	rooms.Get("", h.listRooms)
	rooms.Post("", h.addRoom)
	rooms.Get("/:id", h.getRoom)
	rooms.Patch("/:id", h.updateRoom)
	rooms.Delete("/:id", h.deleteRoom)

	rooms.Get("/:id/equipment", h.listEquipment)
	rooms.Post("/:id/equipment", h.addEquipment)
	rooms.Delete("/:id/equipment/:equipmentId", h.deleteEquipment)
}

func (h *InventoryHandler) listFloors(c *fiber.Ctx) error {
	floors, err := h.inventoryController.ListFloors(c.UserContext())
	if err != nil {
		return h.respondError(c, err, "Failed to list floors")
	}

	return c.JSON(fiber.Map{"floors": floors})
}

func (h *InventoryHandler) addFloor(c *fiber.Ctx) error {
	var req inventoryController.AddFloorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	floor, err := h.inventoryController.AddFloor(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err, "Failed to add floor")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"floor": floor})
}

func (h *InventoryHandler) removeFloor(c *fiber.Ctx) error {
	if err := h.inventoryController.RemoveFloor(c.UserContext(), c.Params("id")); err != nil {
		return h.respondError(c, err, "Failed to remove floor")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *InventoryHandler) listRooms(c *fiber.Ctx) error {
	rooms, err := h.inventoryController.ListRooms(c.UserContext(), c.Query("floor"))
	if err != nil {
		return h.respondError(c, err, "Failed to list rooms")
	}

	return c.JSON(fiber.Map{"rooms": rooms})
}

func (h *InventoryHandler) addRoom(c *fiber.Ctx) error {
	var req inventoryController.AddRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.inventoryController.AddRoom(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err, "Failed to add room")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"room": room})
}

func (h *InventoryHandler) getRoom(c *fiber.Ctx) error {
	room, err := h.inventoryController.GetRoom(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err, "Failed to load room")
	}

	return c.JSON(fiber.Map{"room": room})
}

func (h *InventoryHandler) updateRoom(c *fiber.Ctx) error {
	var req inventoryController.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.inventoryController.UpdateRoom(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return h.respondError(c, err, "Failed to update room")
	}

	return c.JSON(fiber.Map{"room": room})
}

func (h *InventoryHandler) deleteRoom(c *fiber.Ctx) error {
	if err := h.inventoryController.DeleteRoom(c.UserContext(), c.Params("id")); err != nil {
		return h.respondError(c, err, "Failed to delete room")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *InventoryHandler) listEquipment(c *fiber.Ctx) error {
	equipment, err := h.inventoryController.ListEquipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err, "Failed to list equipment")
	}

	return c.JSON(fiber.Map{"equipment": equipment})
}

func (h *InventoryHandler) addEquipment(c *fiber.Ctx) error {
	var req inventoryController.AddEquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	equipment, err := h.inventoryController.AddEquipment(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return h.respondError(c, err, "Failed to add equipment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"equipment": equipment})
}

func (h *InventoryHandler) deleteEquipment(c *fiber.Ctx) error {
	equipmentID, err := uuid.Parse(c.Params("equipmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid equipment ID",
		})
	}

	if err := h.inventoryController.DeleteEquipment(c.UserContext(), c.Params("id"), equipmentID); err != nil {
		return h.respondError(c, err, "Failed to delete equipment")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
