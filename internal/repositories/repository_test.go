package repositories_test

import (
	"context"
	"errors"
	"testing"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewRoomRepository()

	room := &models.Room{Floor: "1", Number: "101", Name: "Lab"}
	require.NoError(t, repo.Create(ctx, db.SQL, room))
	assert.Equal(t, "1-101", room.ID)

	got, err := repo.GetByID(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	assert.Equal(t, "Lab", got.Name)
	assert.Empty(t, got.Maintenance)
	assert.Empty(t, got.Replacements)
	assert.Equal(t, int64(0), got.RowVersion)

	_, err = repo.GetByID(ctx, db.SQL, "9-999")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRoomRepository_DuplicateFloorNumberRejected(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewRoomRepository()

	require.NoError(t, repo.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101"}))
	err := repo.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101"})
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
}

func TestRoomRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewRoomRepository()

	for _, room := range []*models.Room{
		{Floor: "2", Number: "201"},
		{Floor: "1", Number: "102"},
		{Floor: "1", Number: "101"},
	} {
		require.NoError(t, repo.Create(ctx, db.SQL, room))
	}

	floorOne, err := repo.List(ctx, db.SQL, "1")
	require.NoError(t, err)
	require.Len(t, floorOne, 2)
	assert.Equal(t, "101", floorOne[0].Number)
	assert.Equal(t, "102", floorOne[1].Number)

	all, err := repo.List(ctx, db.SQL, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := repo.CountByFloor(ctx, db.SQL, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByFloor(ctx, db.SQL, "7")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRoomRepository_UpdateMergesColumns(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewRoomRepository()

	require.NoError(t, repo.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101", Name: "Old"}))
	require.NoError(t, repo.Update(ctx, db.SQL, "1-101", map[string]any{"name": "New"}))

	got, err := repo.GetByID(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "101", got.Number)

	err = repo.Update(ctx, db.SQL, "1-999", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRoomRepository_UpdateRecordsIfVersion(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewRoomRepository()

	require.NoError(t, repo.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101"}))

	room, err := repo.GetByID(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	room.Maintenance = append(room.Maintenance, models.RoomRecord{ID: "a", EquipmentName: "Projector"})

	rows, err := repo.UpdateRecordsIfVersion(ctx, db.SQL, room, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.UpdateRecordsIfVersion(ctx, db.SQL, room, 0)
	require.NoError(t, err)
	assert.Zero(t, rows, "stale version must not write")

	got, err := repo.GetByID(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.RowVersion)
	require.Len(t, got.Maintenance, 1)
	assert.Equal(t, "Projector", got.Maintenance[0].EquipmentName)
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewRoomRepository()
	require.NoError(t, repo.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101"}))

	getByID := func(ctx context.Context, id string) (*models.Room, error) {
		return repo.GetByID(ctx, db.SQL, id)
	}
	update := func(ctx context.Context, room *models.Room, expected int64) (int64, error) {
		return repo.UpdateRecordsIfVersion(ctx, db.SQL, room, expected)
	}

	t.Run("retries after a concurrent write", func(t *testing.T) {
		attempts := 0
		err := repositories.WithRetry(ctx, 3, "1-101", getByID,
			func(ctx context.Context, room *models.Room, expected int64) (int64, error) {
				attempts++
				if attempts == 1 {
					other, err := repo.GetByID(ctx, db.SQL, room.ID)
					require.NoError(t, err)
					other.Replacements = append(other.Replacements, models.RoomRecord{ID: "other"})
					_, err = repo.UpdateRecordsIfVersion(ctx, db.SQL, other, other.RowVersion)
					require.NoError(t, err)
				}
				return update(ctx, room, expected)
			},
			func(room *models.Room) error {
				room.Maintenance = append(room.Maintenance, models.RoomRecord{ID: "mine"})
				return nil
			},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)

		got, err := repo.GetByID(ctx, db.SQL, "1-101")
		require.NoError(t, err)
		assert.Len(t, got.Maintenance, 1)
		assert.Len(t, got.Replacements, 1)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		err := repositories.WithRetry(ctx, 2, "1-101", getByID,
			func(context.Context, *models.Room, int64) (int64, error) { return 0, nil },
			func(*models.Room) error { return nil },
		)
		assert.ErrorIs(t, err, repositories.ErrVersionConflict)
	})

	t.Run("mutate error aborts without writing", func(t *testing.T) {
		boom := errors.New("boom")
		err := repositories.WithRetry(ctx, 3, "1-101", getByID, update,
			func(*models.Room) error { return boom },
		)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing row", func(t *testing.T) {
		err := repositories.WithRetry(ctx, 3, "nope", getByID, update,
			func(*models.Room) error { return nil },
		)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestFloorRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewFloorRepository()

	require.NoError(t, repo.Create(ctx, db.SQL, &models.Floor{Number: 10, Name: "Tenth"}))
	require.NoError(t, repo.Create(ctx, db.SQL, &models.Floor{Number: 2, Name: "Second"}))

	floors, err := repo.List(ctx, db.SQL)
	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Equal(t, "2", floors[0].ID)
	assert.Equal(t, "10", floors[1].ID)

	floor, err := repo.GetByID(ctx, db.SQL, "10")
	require.NoError(t, err)
	assert.Equal(t, "Tenth", floor.Name)

	require.NoError(t, repo.Delete(ctx, db.SQL, "10"))
	assert.ErrorIs(t, repo.Delete(ctx, db.SQL, "10"), repositories.ErrNotFound)
}

func TestEquipmentRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rooms := repositories.NewRoomRepository()
	repo := repositories.NewEquipmentRepository()

	require.NoError(t, rooms.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101"}))

	projector := &models.Equipment{
		RoomID:    "1-101",
		Floor:     "1",
		Name:      "Projector",
		Quantity:  2,
		Condition: models.EquipmentConditionGood,
		Status:    models.EquipmentStatusAvailable,
	}
	require.NoError(t, repo.Create(ctx, db.SQL, projector))
	assert.NotEqual(t, uuid.Nil, projector.ID)

	orphan := &models.Equipment{
		RoomID:    "1-gone",
		Floor:     "1",
		Name:      "Chair",
		Quantity:  30,
		Condition: models.EquipmentConditionFair,
		Status:    models.EquipmentStatusInUse,
	}
	require.NoError(t, repo.Create(ctx, db.SQL, orphan))

	err := repo.Create(ctx, db.SQL, &models.Equipment{RoomID: "1-101", Name: "Desk", Quantity: 0})
	assert.Error(t, err)

	listed, err := repo.ListByRoom(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Projector", listed[0].Name)

	removed, err := repo.DeleteOrphans(ctx, db.SQL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	assert.ErrorIs(t, repo.Delete(ctx, db.SQL, "1-999", projector.ID), repositories.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, db.SQL, "1-101", projector.ID))

	listed, err = repo.ListByRoom(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestActivityLogRepository_CreateStampsTimestamp(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewActivityLogRepository()

	entry := &models.ActivityLog{Action: "add", Details: "Added room"}
	require.NoError(t, repo.Create(ctx, db.SQL, entry))
	require.NotNil(t, entry.Timestamp)

	entries, err := repo.ListAll(ctx, db.SQL)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.DefaultActivityType, entries[0].Type)
	assert.NotNil(t, entries[0].References)
	assert.NotNil(t, entries[0].Timestamp)
}

func TestUserRepository_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)

	created, err := repo.FindOrCreate(ctx, db.SQL, &models.User{
		ExternalID:  "sub-1",
		Email:       "jdoe@school.edu",
		DisplayName: "Jane",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, created.Role)

	again, err := repo.FindOrCreate(ctx, db.SQL, &models.User{
		ExternalID:  "sub-1",
		Email:       "jane@school.edu",
		DisplayName: "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "jane@school.edu", again.Email)

	stored, err := repo.GetByExternalID(ctx, db.SQL, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.DisplayName)

	_, err = repo.GetByExternalID(ctx, db.SQL, "sub-2")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
