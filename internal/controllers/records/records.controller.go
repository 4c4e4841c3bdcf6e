package recordsController

import (
	"context"
	"fmt"

	"inventory/config"
	"inventory/internal/database"
	. "inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

const MaxDescriptionLength = 1000

var (
	ErrValidation  = services.ErrValidation
	ErrInvalidKind = services.ErrInvalidKind
)

type AppendRecordRequest struct {
	EquipmentName string  `json:"equipmentName"`
	Quantity      int     `json:"quantity"`
	Status        string  `json:"status"`
	Description   string  `json:"description"`
	EquipmentID   *string `json:"equipmentId,omitempty"`
}

type RecordsControllerInterface interface {
	List(ctx context.Context, roomID string, kind RecordKind) ([]RoomRecord, error)
	Append(ctx context.Context, roomID string, kind RecordKind, request *AppendRecordRequest) (*RoomRecord, error)
	Resolve(ctx context.Context, roomID string, kind RecordKind, index int) (*RoomRecord, error)
	Remove(ctx context.Context, roomID string, kind RecordKind, index int) (*RoomRecord, error)
	ResolveByID(ctx context.Context, roomID string, kind RecordKind, recordID string) (*RoomRecord, error)
	RemoveByID(ctx context.Context, roomID string, kind RecordKind, recordID string) (*RoomRecord, error)
}

type RecordsController struct {
	roomRecordService *services.RoomRecordService
	activityLog       *services.ActivityLogService
	db                database.DB
	Config            config.Config
	log               logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) RecordsControllerInterface {
	return &RecordsController{
		roomRecordService: services.RoomRecord,
		activityLog:       services.ActivityLog,
		db:                db,
		Config:            config,
		log:               logger.New("recordsController"),
	}
}

func (c *RecordsController) List(ctx context.Context, roomID string, kind RecordKind) ([]RoomRecord, error) {
	return c.roomRecordService.List(ctx, roomID, kind)
}

func (c *RecordsController) Append(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	request *AppendRecordRequest,
) (*RoomRecord, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	if err := validateAppend(kind, request); err != nil {
		return nil, err
	}

	record, err := c.roomRecordService.Append(ctx, roomID, kind, RoomRecord{
		EquipmentName: utils.CleanText(request.EquipmentName),
		Quantity:      request.Quantity,
		Status:        request.Status,
		Description:   utils.CleanText(request.Description),
		EquipmentID:   request.EquipmentID,
	})
	if err != nil {
		return nil, err
	}

	action := "Added Maintenance Need"
	if kind == RecordKindReplacement {
		action = "Added Replacement Need"
	}
	c.activityLog.Append(ctx, action, services.ActivityPayload{
		Details: fmt.Sprintf("Added %s need for %s in room %s", kind.Label(), record.EquipmentName, roomID),
		Type:    kind.Label(),
		References: map[string]any{
			"roomId":        roomID,
			"recordId":      record.ID,
			"quantity":      record.Quantity,
			"equipmentName": record.EquipmentName,
			"status":        record.Status,
			"reason":        record.Description,
		},
	})

	return &record, nil
}

func validateAppend(kind RecordKind, request *AppendRecordRequest) error {
	if utils.CleanText(request.EquipmentName) == "" {
		return fmt.Errorf("%w: equipment name is required", ErrValidation)
	}
	if request.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}
	if !kind.ValidStatus(request.Status) {
		return fmt.Errorf("%w: invalid %s status %q", ErrValidation, kind.Label(), request.Status)
	}
	if utils.ExceedsLength(utils.CleanText(request.Description), MaxDescriptionLength) {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, MaxDescriptionLength)
	}
	return nil
}

func (c *RecordsController) Resolve(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	index int,
) (*RoomRecord, error) {
	record, err := c.roomRecordService.Resolve(ctx, roomID, kind, index)
	if err != nil {
		return nil, err
	}
	c.logResolved(ctx, roomID, kind, record)
	return &record, nil
}

func (c *RecordsController) Remove(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	index int,
) (*RoomRecord, error) {
	record, err := c.roomRecordService.Remove(ctx, roomID, kind, index)
	if err != nil {
		return nil, err
	}
	c.logRemoved(ctx, roomID, kind, record)
	return &record, nil
}

func (c *RecordsController) ResolveByID(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	recordID string,
) (*RoomRecord, error) {
	record, err := c.roomRecordService.ResolveByID(ctx, roomID, kind, recordID)
	if err != nil {
		return nil, err
	}
	c.logResolved(ctx, roomID, kind, record)
	return &record, nil
}

func (c *RecordsController) RemoveByID(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	recordID string,
) (*RoomRecord, error) {
	record, err := c.roomRecordService.RemoveByID(ctx, roomID, kind, recordID)
	if err != nil {
		return nil, err
	}
	c.logRemoved(ctx, roomID, kind, record)
	return &record, nil
}

func (c *RecordsController) logResolved(ctx context.Context, roomID string, kind RecordKind, record RoomRecord) {
	c.activityLog.Append(ctx, "resolve", services.ActivityPayload{
		Details:    fmt.Sprintf("Resolved %s record in room %s", kind.Label(), roomID),
		Type:       kind.Label(),
		References: recordReferences(roomID, record),
	})
}

func (c *RecordsController) logRemoved(ctx context.Context, roomID string, kind RecordKind, record RoomRecord) {
	c.activityLog.Append(ctx, "delete", services.ActivityPayload{
		Details:    fmt.Sprintf("Deleted %s record from room %s", kind.Label(), roomID),
		Type:       kind.Label(),
		References: recordReferences(roomID, record),
	})
}

func recordReferences(roomID string, record RoomRecord) map[string]any {
	return map[string]any{
		"roomId":        roomID,
		"recordId":      record.ID,
		"equipmentName": record.EquipmentName,
	}
}
