package inventoryController

import (
	"context"
	"fmt"
	"testing"

	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/events"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/testutil"
	"inventory/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	controller InventoryControllerInterface
	repos      repositories.Repository
	db         database.DB
	ctx        context.Context
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := config.Config{JWTSecret: "secret", RecordUpdateMaxRetries: 3}
	repos := repositories.New(db)
	svc := services.New(db, repos, cfg, events.New(nil))

	ctx := types.WithActor(context.Background(), types.Actor{
		UserID:   uuid.NewString(),
		Username: "custodian",
		Role:     models.RolePropertyCustodian,
	})

	return fixture{
		controller: New(repos, svc, cfg, db),
		repos:      repos,
		db:         db,
		ctx:        ctx,
	}
}

func (f fixture) actions(t *testing.T) []string {
	t.Helper()
	entries, err := f.repos.ActivityLog.ListAll(f.ctx, f.db.SQL)
	require.NoError(t, err)

	actions := make([]string, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

func seedRoom(t *testing.T, f fixture) *models.Room {
	t.Helper()
	_, err := f.controller.AddFloor(f.ctx, &AddFloorRequest{Number: 1, Name: "Ground"})
	require.NoError(t, err)
	room, err := f.controller.AddRoom(f.ctx, &AddRoomRequest{Floor: "1", Number: "101", Name: "Lab"})
	require.NoError(t, err)
	return room
}

func TestAddFloor(t *testing.T) {
	f := setup(t)

	floor, err := f.controller.AddFloor(f.ctx, &AddFloorRequest{Number: 2, Name: "Science"})
	require.NoError(t, err)
	assert.Equal(t, "2", floor.ID)

	_, err = f.controller.AddFloor(f.ctx, &AddFloorRequest{Number: 2})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.AddFloor(f.ctx, &AddFloorRequest{Number: 0})
	assert.ErrorIs(t, err, ErrValidation)

	entries, err := f.repos.ActivityLog.ListAll(f.ctx, f.db.SQL)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "add_floor", entries[0].Action)
	assert.Equal(t, "Added floor 2 - Science", entries[0].Details)
	assert.Equal(t, "custodian", entries[0].UserName)
}

func TestRemoveFloor_RejectsFloorWithRooms(t *testing.T) {
	f := setup(t)
	seedRoom(t, f)

	err := f.controller.RemoveFloor(f.ctx, "1")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.controller.DeleteRoom(f.ctx, "1-101"))
	require.NoError(t, f.controller.RemoveFloor(f.ctx, "1"))

	floors, err := f.controller.ListFloors(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, floors)

	assert.ErrorIs(t, f.controller.RemoveFloor(f.ctx, "1"), ErrNotFound)
}

func TestAddRoom(t *testing.T) {
	f := setup(t)
	room := seedRoom(t, f)

	assert.Equal(t, "1-101", room.ID)
	assert.Empty(t, room.Maintenance)
	assert.Empty(t, room.Replacements)

	_, err := f.controller.AddRoom(f.ctx, &AddRoomRequest{Floor: "1", Number: "101"})
	assert.ErrorIs(t, err, ErrValidation, "duplicate room number on a floor")

	_, err = f.controller.AddRoom(f.ctx, &AddRoomRequest{Floor: "9", Number: "901"})
	assert.ErrorIs(t, err, ErrValidation, "unknown floor")

	_, err = f.controller.AddRoom(f.ctx, &AddRoomRequest{Floor: "1"})
	assert.ErrorIs(t, err, ErrValidation)

	rooms, err := f.controller.ListRooms(f.ctx, "1")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	assert.Contains(t, f.actions(t), "add_room")
}

func TestUpdateRoom(t *testing.T) {
	f := setup(t)
	seedRoom(t, f)

	name := "Chemistry Lab"
	room, err := f.controller.UpdateRoom(f.ctx, "1-101", &UpdateRoomRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, room.Name)

	_, err = f.controller.UpdateRoom(f.ctx, "1-101", &UpdateRoomRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.UpdateRoom(f.ctx, "1-999", &UpdateRoomRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEquipment(t *testing.T) {
	f := setup(t)
	room := seedRoom(t, f)

	request := &AddEquipmentRequest{Name: "Projector", Quantity: 2, Condition: "Good", Status: "Available"}
	equipment, err := f.controller.AddEquipment(f.ctx, room.ID, request)
	require.NoError(t, err)
	assert.Equal(t, room.Floor, equipment.Floor)

	_, err = f.controller.AddEquipment(f.ctx, room.ID, &AddEquipmentRequest{Name: "Chair", Quantity: 0, Condition: "Good", Status: "Available"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.AddEquipment(f.ctx, room.ID, &AddEquipmentRequest{Name: "Chair", Quantity: 1, Condition: "Shiny", Status: "Available"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.controller.AddEquipment(f.ctx, "1-404", request)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := f.controller.ListEquipment(f.ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, f.controller.DeleteEquipment(f.ctx, room.ID, equipment.ID))
	assert.ErrorIs(t, f.controller.DeleteEquipment(f.ctx, room.ID, equipment.ID), ErrNotFound)

	assert.Contains(t, f.actions(t), "delete_equipment")
}

func TestDeleteRoom_CascadesEquipment(t *testing.T) {
	f := setup(t)
	room := seedRoom(t, f)

	for _, name := range []string{"Projector", "Whiteboard", "Desk"} {
		_, err := f.controller.AddEquipment(f.ctx, room.ID, &AddEquipmentRequest{
			Name: name, Quantity: 1, Condition: "Good", Status: "Available",
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.controller.DeleteRoom(f.ctx, room.ID))

	_, err := f.controller.GetRoom(f.ctx, room.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := f.repos.Equipment.ListByRoom(f.ctx, f.db.SQL, room.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, f.controller.DeleteRoom(f.ctx, room.ID), ErrNotFound)
}

type failingEquipmentRepository struct {
	repositories.EquipmentRepository
	failID uuid.UUID
}

func (r failingEquipmentRepository) Delete(
	ctx context.Context,
	tx *gorm.DB,
	roomID string,
	equipmentID uuid.UUID,
) error {
	if equipmentID == r.failID {
		return fmt.Errorf("%w: connection reset", repositories.ErrStoreUnavailable)
	}
	return r.EquipmentRepository.Delete(ctx, tx, roomID, equipmentID)
}

func TestDeleteRoom_PartialCascade(t *testing.T) {
	f := setup(t)
	room := seedRoom(t, f)

	var stuck *models.Equipment
	for _, name := range []string{"Projector", "Whiteboard", "Desk"} {
		item, err := f.controller.AddEquipment(f.ctx, room.ID, &AddEquipmentRequest{
			Name: name, Quantity: 1, Condition: "Good", Status: "Available",
		})
		require.NoError(t, err)
		if name == "Whiteboard" {
			stuck = item
		}
	}

	cfg := config.Config{JWTSecret: "secret", RecordUpdateMaxRetries: 3}
	repos := f.repos
	repos.Equipment = failingEquipmentRepository{
		EquipmentRepository: f.repos.Equipment,
		failID:              stuck.ID,
	}
	controller := New(repos, services.New(f.db, repos, cfg, events.New(nil)), cfg, f.db)

	err := controller.DeleteRoom(f.ctx, room.ID)
	assert.ErrorIs(t, err, ErrPartialCascade)

	_, err = f.controller.GetRoom(f.ctx, room.ID)
	assert.NoError(t, err, "room row is kept when an equipment delete fails")

	remaining, err := f.repos.Equipment.ListByRoom(f.ctx, f.db.SQL, room.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, stuck.ID, remaining[0].ID)

	assert.NotContains(t, f.actions(t), "delete")
}

func TestWritesWithoutActorSkipActivity(t *testing.T) {
	f := setup(t)

	_, err := f.controller.AddFloor(context.Background(), &AddFloorRequest{Number: 3})
	require.NoError(t, err)

	assert.Empty(t, f.actions(t))
}
