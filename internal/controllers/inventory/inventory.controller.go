package inventoryController

import (
	"context"
	"errors"
	"fmt"

	"inventory/config"
	"inventory/internal/database"
	. "inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	MaxNameLength  = 200
	MaxNotesLength = 1000
)

var (
	ErrValidation     = services.ErrValidation
	ErrNotFound       = services.ErrNotFound
	ErrPartialCascade = services.ErrPartialCascade
)

type AddFloorRequest struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type AddRoomRequest struct {
	Floor  string `json:"floor"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

type UpdateRoomRequest struct {
	Name *string `json:"name,omitempty"`
}

type AddEquipmentRequest struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

type InventoryControllerInterface interface {
	AddFloor(ctx context.Context, request *AddFloorRequest) (*Floor, error)
	ListFloors(ctx context.Context) ([]Floor, error)
	RemoveFloor(ctx context.Context, floorID string) error

	AddRoom(ctx context.Context, request *AddRoomRequest) (*Room, error)
	GetRoom(ctx context.Context, roomID string) (*Room, error)
	ListRooms(ctx context.Context, floor string) ([]Room, error)
	UpdateRoom(ctx context.Context, roomID string, request *UpdateRoomRequest) (*Room, error)
	DeleteRoom(ctx context.Context, roomID string) error

	AddEquipment(ctx context.Context, roomID string, request *AddEquipmentRequest) (*Equipment, error)
	ListEquipment(ctx context.Context, roomID string) ([]Equipment, error)
	DeleteEquipment(ctx context.Context, roomID string, equipmentID uuid.UUID) error
}

type InventoryController struct {
	floorRepo          repositories.FloorRepository
	roomRepo           repositories.RoomRepository
	equipmentRepo      repositories.EquipmentRepository
	activityLog        *services.ActivityLogService
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	log                logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) InventoryControllerInterface {
	return &InventoryController{
		floorRepo:          repos.Floor,
		roomRepo:           repos.Room,
		equipmentRepo:      repos.Equipment,
		activityLog:        services.ActivityLog,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		log:                logger.New("inventoryController"),
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func (c *InventoryController) AddFloor(ctx context.Context, request *AddFloorRequest) (*Floor, error) {
	log := c.log.Function("AddFloor").TraceFromContext(ctx)

	if request.Number <= 0 {
		return nil, validationError("floor number must be positive")
	}
	name := utils.CleanText(request.Name)
	if utils.ExceedsLength(name, MaxNameLength) {
		return nil, validationError("floor name exceeds %d characters", MaxNameLength)
	}

	floorID := FloorID(request.Number)
	if _, err := c.floorRepo.GetByID(ctx, c.db.SQL, floorID); err == nil {
		return nil, validationError("floor %s already exists", floorID)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, log.Err("failed to check existing floor", err, "floorID", floorID)
	}

	floor := &Floor{ID: floorID, Number: request.Number, Name: name}
	if err := c.floorRepo.Create(ctx, c.db.SQL, floor); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Added floor %d", floor.Number)
	if name != "" {
		details += " - " + name
	}
	c.activityLog.Append(ctx, "add_floor", services.ActivityPayload{
		Details:    details,
		References: map[string]any{"floorId": floor.ID},
	})

	return floor, nil
}

func (c *InventoryController) ListFloors(ctx context.Context) ([]Floor, error) {
	return c.floorRepo.List(ctx, c.db.SQL)
}

// RemoveFloor deletes a floor that no room references. The count and delete share a transaction.
func (c *InventoryController) RemoveFloor(ctx context.Context, floorID string) error {
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.floorRepo.GetByID(ctx, tx, floorID); err != nil {
			return err
		}

		rooms, err := c.roomRepo.CountByFloor(ctx, tx, floorID)
		if err != nil {
			return err
		}
		if rooms > 0 {
			return validationError("floor %s still has %d rooms", floorID, rooms)
		}

		return c.floorRepo.Delete(ctx, tx, floorID)
	})
	if err != nil {
		return err
	}

	c.activityLog.Append(ctx, "delete_floor", services.ActivityPayload{
		Details:    fmt.Sprintf("Deleted floor %s", floorID),
		References: map[string]any{"floorId": floorID},
	})

	return nil
}

func (c *InventoryController) AddRoom(ctx context.Context, request *AddRoomRequest) (*Room, error) {
	log := c.log.Function("AddRoom").TraceFromContext(ctx)

	floor := utils.CleanText(request.Floor)
	number := utils.CleanText(request.Number)
	name := utils.CleanText(request.Name)

	if floor == "" || number == "" {
		return nil, validationError("floor and room number are required")
	}
	if utils.ExceedsLength(name, MaxNameLength) {
		return nil, validationError("room name exceeds %d characters", MaxNameLength)
	}

	if _, err := c.floorRepo.GetByID(ctx, c.db.SQL, floor); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, validationError("floor %s does not exist", floor)
		}
		return nil, log.Err("failed to load floor", err, "floor", floor)
	}

	roomID := RoomID(floor, number)
	if _, err := c.roomRepo.GetByID(ctx, c.db.SQL, roomID); err == nil {
		return nil, validationError("room %s already exists on floor %s", number, floor)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, log.Err("failed to check existing room", err, "roomID", roomID)
	}

	room := &Room{ID: roomID, Floor: floor, Number: number, Name: name}
	if err := c.roomRepo.Create(ctx, c.db.SQL, room); err != nil {
		return nil, err
	}

	c.activityLog.Append(ctx, "add_room", services.ActivityPayload{
		Details:    fmt.Sprintf("Added room %s (%s) on Floor %s", name, number, floor),
		References: map[string]any{"roomId": room.ID},
	})

	return room, nil
}

func (c *InventoryController) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	return c.roomRepo.GetByID(ctx, c.db.SQL, roomID)
}

func (c *InventoryController) ListRooms(ctx context.Context, floor string) ([]Room, error) {
	return c.roomRepo.List(ctx, c.db.SQL, utils.CleanText(floor))
}

func (c *InventoryController) UpdateRoom(
	ctx context.Context,
	roomID string,
	request *UpdateRoomRequest,
) (*Room, error) {
	updates := map[string]any{}
	if request.Name != nil {
		name := utils.CleanText(*request.Name)
		if utils.ExceedsLength(name, MaxNameLength) {
			return nil, validationError("room name exceeds %d characters", MaxNameLength)
		}
		updates["name"] = name
	}
	if len(updates) == 0 {
		return nil, validationError("no fields to update")
	}

	if err := c.roomRepo.Update(ctx, c.db.SQL, roomID, updates); err != nil {
		return nil, err
	}

	room, err := c.roomRepo.GetByID(ctx, c.db.SQL, roomID)
	if err != nil {
		return nil, err
	}

	c.activityLog.Append(ctx, "update", services.ActivityPayload{
		Details:    fmt.Sprintf("Updated details for room %s", room.Number),
		References: map[string]any{"roomId": room.ID},
	})

	return room, nil
}

// DeleteRoom removes every equipment row in parallel, waits for all of them, then deletes
// the room. The steps are not atomic: any failure reports ErrPartialCascade.
func (c *InventoryController) DeleteRoom(ctx context.Context, roomID string) error {
	log := c.log.Function("DeleteRoom").TraceFromContext(ctx)

	room, err := c.roomRepo.GetByID(ctx, c.db.SQL, roomID)
	if err != nil {
		return err
	}

	equipment, err := c.equipmentRepo.ListByRoom(ctx, c.db.SQL, roomID)
	if err != nil {
		return err
	}

	var group errgroup.Group
	for _, item := range equipment {
		group.Go(func() error {
			return c.equipmentRepo.Delete(ctx, c.db.SQL, roomID, item.ID)
		})
	}
	cascadeErr := group.Wait()

	if cascadeErr == nil {
		cascadeErr = c.roomRepo.Delete(ctx, c.db.SQL, roomID)
	}
	if cascadeErr != nil {
		log.Er("room cascade did not complete", cascadeErr, "roomID", roomID)
		return fmt.Errorf("%w: room %s", ErrPartialCascade, roomID)
	}

	c.activityLog.Append(ctx, "delete", services.ActivityPayload{
		Details:    fmt.Sprintf("Deleted room %s and all associated records", room.Number),
		References: map[string]any{"roomId": room.ID},
	})

	return nil
}

func (c *InventoryController) AddEquipment(
	ctx context.Context,
	roomID string,
	request *AddEquipmentRequest,
) (*Equipment, error) {
	name := utils.CleanText(request.Name)
	if name == "" {
		return nil, validationError("equipment name is required")
	}
	if utils.ExceedsLength(name, MaxNameLength) {
		return nil, validationError("equipment name exceeds %d characters", MaxNameLength)
	}
	if request.Quantity <= 0 {
		return nil, validationError("quantity must be a positive integer")
	}
	notes := utils.CleanText(request.Notes)
	if utils.ExceedsLength(notes, MaxNotesLength) {
		return nil, validationError("notes exceed %d characters", MaxNotesLength)
	}

	condition := EquipmentCondition(request.Condition)
	if !condition.Valid() {
		return nil, validationError("invalid condition %q", request.Condition)
	}
	status := EquipmentStatus(request.Status)
	if !status.Valid() {
		return nil, validationError("invalid status %q", request.Status)
	}

	room, err := c.roomRepo.GetByID(ctx, c.db.SQL, roomID)
	if err != nil {
		return nil, err
	}

	equipment := &Equipment{
		RoomID:    room.ID,
		Floor:     room.Floor,
		Name:      name,
		Quantity:  request.Quantity,
		Condition: condition,
		Status:    status,
		Notes:     notes,
	}
	if err := c.equipmentRepo.Create(ctx, c.db.SQL, equipment); err != nil {
		return nil, err
	}

	c.activityLog.Append(ctx, "add", services.ActivityPayload{
		Details: fmt.Sprintf("Added equipment %s to room %s", equipment.Name, room.ID),
		References: map[string]any{
			"roomId":        room.ID,
			"equipmentName": equipment.Name,
			"quantity":      equipment.Quantity,
			"status":        string(equipment.Status),
		},
	})

	return equipment, nil
}

func (c *InventoryController) ListEquipment(ctx context.Context, roomID string) ([]Equipment, error) {
	if _, err := c.roomRepo.GetByID(ctx, c.db.SQL, roomID); err != nil {
		return nil, err
	}
	return c.equipmentRepo.ListByRoom(ctx, c.db.SQL, roomID)
}

func (c *InventoryController) DeleteEquipment(
	ctx context.Context,
	roomID string,
	equipmentID uuid.UUID,
) error {
	if err := c.equipmentRepo.Delete(ctx, c.db.SQL, roomID, equipmentID); err != nil {
		return err
	}

	c.activityLog.Append(ctx, "delete_equipment", services.ActivityPayload{
		Details:    fmt.Sprintf("Deleted equipment %s from Room %s", equipmentID, roomID),
		References: map[string]any{"roomId": roomID, "equipmentId": equipmentID.String()},
	})

	return nil
}
