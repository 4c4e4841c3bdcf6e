package repositories

import (
	"context"

	. "inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type FloorRepository interface {
	Create(ctx context.Context, tx *gorm.DB, floor *Floor) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*Floor, error)
	List(ctx context.Context, tx *gorm.DB) ([]Floor, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type floorRepository struct {
	log logger.Logger
}

func NewFloorRepository() FloorRepository {
	return &floorRepository{
		log: logger.New("floorRepository"),
	}
}

func (r *floorRepository) Create(ctx context.Context, tx *gorm.DB, floor *Floor) error {
	log := r.log.Function("Create")

	if err := gorm.G[Floor](tx).Create(ctx, floor); err != nil {
		return log.Err("failed to create floor", storeError(err), "number", floor.Number)
	}

	return nil
}

func (r *floorRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*Floor, error) {
	floor, err := gorm.G[Floor](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	return &floor, nil
}

func (r *floorRepository) List(ctx context.Context, tx *gorm.DB) ([]Floor, error) {
	log := r.log.Function("List")

	floors, err := gorm.G[Floor](tx).Order("number ASC").Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list floors", storeError(err))
	}

	return floors, nil
}

func (r *floorRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	log := r.log.Function("Delete")

	rows, err := gorm.G[Floor](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete floor", storeError(err), "floorID", id)
	}
	if rows == 0 {
		return storeError(gorm.ErrRecordNotFound)
	}

	return nil
}
