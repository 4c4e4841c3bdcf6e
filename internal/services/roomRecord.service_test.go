package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inventory/internal/database"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func setupRoomRecords(t *testing.T) (*RoomRecordService, database.DB, *fakeClock) {
	t.Helper()

	db := testutil.NewDB(t)
	rooms := repositories.NewRoomRepository()
	require.NoError(t, rooms.Create(context.Background(), db.SQL, &models.Room{Floor: "1", Number: "101"}))

	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	service := NewRoomRecordService(db, rooms, 3)
	service.now = clock.Now

	return service, db, clock
}

func appendNamed(t *testing.T, service *RoomRecordService, kind models.RecordKind, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := service.Append(context.Background(), "1-101", kind, models.RoomRecord{
			EquipmentName: name,
			Quantity:      1,
			Status:        "Pending",
		})
		require.NoError(t, err)
	}
}

func names(records []models.RoomRecord) []string {
	out := make([]string, len(records))
	for i, record := range records {
		out[i] = record.EquipmentName
	}
	return out
}

func TestRoomRecordService_Append(t *testing.T) {
	service, _, _ := setupRoomRecords(t)
	ctx := context.Background()

	added, err := service.Append(ctx, "1-101", models.RecordKindMaintenance, models.RoomRecord{
		EquipmentName: "Projector",
		Quantity:      2,
		Status:        "Needs Repair",
		Resolved:      true,
	})
	require.NoError(t, err)
	assert.Len(t, added.ID, recordIDLength)
	assert.False(t, added.Resolved, "appended records always start unresolved")
	assert.False(t, added.CreatedAt.IsZero())

	records, err := service.List(ctx, "1-101", models.RecordKindMaintenance)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, added.ID, records[0].ID)

	replacements, err := service.List(ctx, "1-101", models.RecordKindReplacement)
	require.NoError(t, err)
	assert.Empty(t, replacements)
}

func TestRoomRecordService_MissingRoomAndKind(t *testing.T) {
	service, _, _ := setupRoomRecords(t)
	ctx := context.Background()

	_, err := service.Append(ctx, "9-999", models.RecordKindMaintenance, models.RoomRecord{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Append(ctx, "1-101", models.RecordKind("equipment"), models.RoomRecord{})
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestRoomRecordService_LengthConsistency(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []models.RecordKind{models.RecordKindMaintenance, models.RecordKindReplacement} {
		t.Run(string(kind), func(t *testing.T) {
			service, _, _ := setupRoomRecords(t)

			const appends = 5
			for i := range appends {
				appendNamed(t, service, kind, fmt.Sprintf("item-%d", i))
			}

			_, err := service.Resolve(ctx, "1-101", kind, 1)
			require.NoError(t, err)
			_, err = service.Resolve(ctx, "1-101", kind, 3)
			require.NoError(t, err)

			_, err = service.Remove(ctx, "1-101", kind, 0)
			require.NoError(t, err)
			_, err = service.Remove(ctx, "1-101", kind, 0)
			require.NoError(t, err)

			records, err := service.List(ctx, "1-101", kind)
			require.NoError(t, err)
			require.Len(t, records, appends-2)

			resolved := map[string]bool{"item-2": false, "item-3": true, "item-4": false}
			for _, record := range records {
				assert.Equal(t, resolved[record.EquipmentName], record.Resolved, record.EquipmentName)
			}
		})
	}
}

func TestRoomRecordService_IdempotentResolveRefreshesTimestamp(t *testing.T) {
	service, _, _ := setupRoomRecords(t)
	ctx := context.Background()
	appendNamed(t, service, models.RecordKindMaintenance, "Projector")

	first, err := service.Resolve(ctx, "1-101", models.RecordKindMaintenance, 0)
	require.NoError(t, err)
	require.NotNil(t, first.ResolvedAt)

	second, err := service.Resolve(ctx, "1-101", models.RecordKindMaintenance, 0)
	require.NoError(t, err)
	require.NotNil(t, second.ResolvedAt)

	assert.True(t, second.Resolved)
	assert.True(t, second.ResolvedAt.After(*first.ResolvedAt))
}

func TestRoomRecordService_IndexInvalidation(t *testing.T) {
	service, _, _ := setupRoomRecords(t)
	ctx := context.Background()
	appendNamed(t, service, models.RecordKindReplacement, "A", "B", "C")

	_, err := service.Remove(ctx, "1-101", models.RecordKindReplacement, 0)
	require.NoError(t, err)

	_, err = service.Resolve(ctx, "1-101", models.RecordKindReplacement, 2)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	resolved, err := service.Resolve(ctx, "1-101", models.RecordKindReplacement, 1)
	require.NoError(t, err)
	assert.Equal(t, "C", resolved.EquipmentName, "index 1 now addresses the record that shifted down")

	records, err := service.List(ctx, "1-101", models.RecordKindReplacement)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, names(records))
}

func TestRoomRecordService_OutOfRangeLeavesArrayUnchanged(t *testing.T) {
	service, _, _ := setupRoomRecords(t)
	ctx := context.Background()
	appendNamed(t, service, models.RecordKindMaintenance, "A", "B")

	before, err := service.List(ctx, "1-101", models.RecordKindMaintenance)
	require.NoError(t, err)

	_, err = service.Resolve(ctx, "1-101", models.RecordKindMaintenance, 99)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = service.Remove(ctx, "1-101", models.RecordKindMaintenance, -1)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	after, err := service.List(ctx, "1-101", models.RecordKindMaintenance)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRoomRecordService_ByIDSurvivesRemovals(t *testing.T) {
	service, _, _ := setupRoomRecords(t)
	ctx := context.Background()
	appendNamed(t, service, models.RecordKindMaintenance, "A", "B", "C")

	records, err := service.List(ctx, "1-101", models.RecordKindMaintenance)
	require.NoError(t, err)
	targetID := records[2].ID

	_, err = service.RemoveByID(ctx, "1-101", models.RecordKindMaintenance, records[0].ID)
	require.NoError(t, err)

	resolved, err := service.ResolveByID(ctx, "1-101", models.RecordKindMaintenance, targetID)
	require.NoError(t, err)
	assert.Equal(t, "C", resolved.EquipmentName)
	assert.True(t, resolved.Resolved)

	_, err = service.ResolveByID(ctx, "1-101", models.RecordKindMaintenance, records[0].ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	removed, err := service.RemoveByID(ctx, "1-101", models.RecordKindMaintenance, targetID)
	require.NoError(t, err)
	assert.Equal(t, "C", removed.EquipmentName)

	records, err = service.List(ctx, "1-101", models.RecordKindMaintenance)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(records))
}

type conflictingRoomRepository struct {
	repositories.RoomRepository
	conflicts int
}

func (r *conflictingRoomRepository) UpdateRecordsIfVersion(
	ctx context.Context,
	tx *gorm.DB,
	room *models.Room,
	expectedVersion int64,
) (int64, error) {
	if r.conflicts > 0 {
		r.conflicts--
		return 0, nil
	}
	return r.RoomRepository.UpdateRecordsIfVersion(ctx, tx, room, expectedVersion)
}

func TestRoomRecordService_VersionConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("retries until the write lands", func(t *testing.T) {
		service, _, _ := setupRoomRecords(t)
		service.rooms = &conflictingRoomRepository{RoomRepository: service.rooms, conflicts: 2}

		_, err := service.Append(ctx, "1-101", models.RecordKindMaintenance, models.RoomRecord{EquipmentName: "A"})
		require.NoError(t, err)

		records, err := service.List(ctx, "1-101", models.RecordKindMaintenance)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("fails with conflict when retries run out", func(t *testing.T) {
		service, _, _ := setupRoomRecords(t)
		service.rooms = &conflictingRoomRepository{RoomRepository: service.rooms, conflicts: 3}

		_, err := service.Append(ctx, "1-101", models.RecordKindMaintenance, models.RoomRecord{EquipmentName: "A"})
		assert.ErrorIs(t, err, ErrConflict)

		records, err := service.List(ctx, "1-101", models.RecordKindMaintenance)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
