package repositories

import (
	"context"

	. "inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(ctx context.Context, tx *gorm.DB, room *Room) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*Room, error)
	List(ctx context.Context, tx *gorm.DB, floor string) ([]Room, error)
	CountByFloor(ctx context.Context, tx *gorm.DB, floor string) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id string, updates map[string]any) error
	UpdateRecordsIfVersion(
		ctx context.Context,
		tx *gorm.DB,
		room *Room,
		expectedVersion int64,
	) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type roomRepository struct {
	log logger.Logger
}

func NewRoomRepository() RoomRepository {
	return &roomRepository{
		log: logger.New("roomRepository"),
	}
}

func (r *roomRepository) Create(ctx context.Context, tx *gorm.DB, room *Room) error {
	log := r.log.Function("Create")

	if err := gorm.G[Room](tx).Create(ctx, room); err != nil {
		return log.Err(
			"failed to create room",
			storeError(err),
			"floor", room.Floor,
			"number", room.Number,
		)
	}

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*Room, error) {
	room, err := gorm.G[Room](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	return &room, nil
}

// List returns rooms ordered by number. An empty floor lists every room.
func (r *roomRepository) List(ctx context.Context, tx *gorm.DB, floor string) ([]Room, error) {
	log := r.log.Function("List")

	query := gorm.G[Room](tx).Order("floor ASC").Order("number ASC")
	if floor != "" {
		query = query.Where("floor = ?", floor)
	}

	rooms, err := query.Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list rooms", storeError(err), "floor", floor)
	}

	return rooms, nil
}

func (r *roomRepository) CountByFloor(ctx context.Context, tx *gorm.DB, floor string) (int64, error) {
	log := r.log.Function("CountByFloor")

	count, err := gorm.G[Room](tx).Where("floor = ?", floor).Count(ctx, "id")
	if err != nil {
		return 0, log.Err("failed to count rooms", storeError(err), "floor", floor)
	}

	return count, nil
}

// Update merges the given columns into the room row.
func (r *roomRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id string,
	updates map[string]any,
) error {
	log := r.log.Function("Update")

	result := tx.WithContext(ctx).Model(&Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return log.Err("failed to update room", storeError(result.Error), "roomID", id)
	}
	if result.RowsAffected == 0 {
		return storeError(gorm.ErrRecordNotFound)
	}

	return nil
}

// UpdateRecordsIfVersion replaces both embedded record arrays when row_version still
// equals expectedVersion, bumping the version in the same statement.
func (r *roomRepository) UpdateRecordsIfVersion(
	ctx context.Context,
	tx *gorm.DB,
	room *Room,
	expectedVersion int64,
) (int64, error) {
	log := r.log.Function("UpdateRecordsIfVersion")

	result := tx.WithContext(ctx).
		Model(&Room{}).
		Where("id = ? AND row_version = ?", room.ID, expectedVersion).
		Updates(map[string]any{
			"maintenance":  room.Maintenance,
			"replacements": room.Replacements,
			"row_version":  gorm.Expr("row_version + 1"),
		})
	if result.Error != nil {
		return 0, log.Err(
			"failed to update room records",
			storeError(result.Error),
			"roomID", room.ID,
			"expectedVersion", expectedVersion,
		)
	}

	return result.RowsAffected, nil
}

func (r *roomRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	log := r.log.Function("Delete")

	rows, err := gorm.G[Room](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete room", storeError(err), "roomID", id)
	}
	if rows == 0 {
		return storeError(gorm.ErrRecordNotFound)
	}

	return nil
}
