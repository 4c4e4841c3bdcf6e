package repositories

import (
	"context"

	. "inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, equipment *Equipment) error
	ListByRoom(ctx context.Context, tx *gorm.DB, roomID string) ([]Equipment, error)
	Delete(ctx context.Context, tx *gorm.DB, roomID string, equipmentID uuid.UUID) error
	DeleteOrphans(ctx context.Context, tx *gorm.DB) (int64, error)
}

type equipmentRepository struct {
	log logger.Logger
}

func NewEquipmentRepository() EquipmentRepository {
	return &equipmentRepository{
		log: logger.New("equipmentRepository"),
	}
}

func (r *equipmentRepository) Create(ctx context.Context, tx *gorm.DB, equipment *Equipment) error {
	log := r.log.Function("Create")

	if err := gorm.G[Equipment](tx).Create(ctx, equipment); err != nil {
		return log.Err(
			"failed to create equipment",
			storeError(err),
			"roomID", equipment.RoomID,
			"name", equipment.Name,
		)
	}

	return nil
}

func (r *equipmentRepository) ListByRoom(
	ctx context.Context,
	tx *gorm.DB,
	roomID string,
) ([]Equipment, error) {
	log := r.log.Function("ListByRoom")

	equipment, err := gorm.G[Equipment](tx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list equipment", storeError(err), "roomID", roomID)
	}

	return equipment, nil
}

func (r *equipmentRepository) Delete(
	ctx context.Context,
	tx *gorm.DB,
	roomID string,
	equipmentID uuid.UUID,
) error {
	log := r.log.Function("Delete")

	rows, err := gorm.G[Equipment](tx).
		Where("room_id = ? AND id = ?", roomID, equipmentID).
		Delete(ctx)
	if err != nil {
		return log.Err(
			"failed to delete equipment",
			storeError(err),
			"roomID", roomID,
			"equipmentID", equipmentID,
		)
	}
	if rows == 0 {
		return storeError(gorm.ErrRecordNotFound)
	}

	return nil
}

// DeleteOrphans removes equipment whose room row no longer exists.
func (r *equipmentRepository) DeleteOrphans(ctx context.Context, tx *gorm.DB) (int64, error) {
	log := r.log.Function("DeleteOrphans")

	rows, err := gorm.G[Equipment](tx).
		Where("room_id NOT IN (?)", tx.Model(&Room{}).Select("id")).
		Delete(ctx)
	if err != nil {
		return 0, log.Err("failed to delete orphaned equipment", storeError(err))
	}

	return int64(rows), nil
}
