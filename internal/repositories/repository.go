package repositories

import (
	"errors"
	"fmt"

	"inventory/internal/database"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrVersionConflict  = errors.New("row version conflict")
)

type Repository struct {
	User        UserRepository
	Floor       FloorRepository
	Room        RoomRepository
	Equipment   EquipmentRepository
	ActivityLog ActivityLogRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:        NewUserRepository(db),
		Floor:       NewFloorRepository(),
		Room:        NewRoomRepository(),
		Equipment:   NewEquipmentRepository(),
		ActivityLog: NewActivityLogRepository(),
	}
}

// storeError classifies a gorm failure as ErrNotFound or ErrStoreUnavailable,
// keeping the driver error in the chain.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
