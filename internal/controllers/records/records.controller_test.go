package recordsController

import (
	"context"
	"testing"

	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/events"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/testutil"
	"inventory/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (RecordsControllerInterface, repositories.Repository, database.DB, context.Context) {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := config.Config{JWTSecret: "secret", RecordUpdateMaxRetries: 3}
	repos := repositories.New(db)
	svc := services.New(db, repos, cfg, events.New(nil))

	ctx := types.WithActor(context.Background(), types.Actor{
		UserID:   "u-1",
		Username: "it-desk",
		Role:     models.RoleITOffice,
	})

	require.NoError(t, repos.Room.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101", Name: "Lab"}))

	return New(repos, svc, cfg, db), repos, db, ctx
}

func TestAppend_Validation(t *testing.T) {
	controller, _, _, ctx := setup(t)

	tests := []struct {
		name    string
		kind    models.RecordKind
		request AppendRecordRequest
		wantErr error
	}{
		{
			name:    "unknown kind",
			kind:    "repairs",
			request: AppendRecordRequest{EquipmentName: "Chair", Quantity: 1, Status: "Pending"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "missing equipment name",
			kind:    models.RecordKindMaintenance,
			request: AppendRecordRequest{Quantity: 1, Status: "Pending"},
			wantErr: ErrValidation,
		},
		{
			name:    "non positive quantity",
			kind:    models.RecordKindMaintenance,
			request: AppendRecordRequest{EquipmentName: "Chair", Quantity: 0, Status: "Pending"},
			wantErr: ErrValidation,
		},
		{
			name:    "replacement status on maintenance",
			kind:    models.RecordKindMaintenance,
			request: AppendRecordRequest{EquipmentName: "Chair", Quantity: 1, Status: "Obsolete"},
			wantErr: ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := controller.Append(ctx, "1-101", tc.kind, &tc.request)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAppend_LogsNeedWithReferences(t *testing.T) {
	controller, repos, db, ctx := setup(t)

	record, err := controller.Append(ctx, "1-101", models.RecordKindReplacement, &AppendRecordRequest{
		EquipmentName: "Projector",
		Quantity:      2,
		Status:        "Obsolete",
		Description:   "lamp burnt",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.Resolved)

	entries, err := repos.ActivityLog.ListAll(ctx, db.SQL)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Added Replacement Need", entry.Action)
	assert.Equal(t, "replacement", entry.Type)
	assert.Equal(t, "Added replacement need for Projector in room 1-101", entry.Details)
	assert.Equal(t, "lamp burnt", entry.References["reason"])
	assert.Equal(t, "1-101", entry.References["roomId"])
}

func TestResolveAndRemove(t *testing.T) {
	controller, repos, db, ctx := setup(t)

	for _, name := range []string{"Chair", "Desk"} {
		_, err := controller.Append(ctx, "1-101", models.RecordKindMaintenance, &AppendRecordRequest{
			EquipmentName: name, Quantity: 1, Status: "Needs Repair",
		})
		require.NoError(t, err)
	}

	resolved, err := controller.Resolve(ctx, "1-101", models.RecordKindMaintenance, 1)
	require.NoError(t, err)
	assert.Equal(t, "Desk", resolved.EquipmentName)
	assert.True(t, resolved.Resolved)

	removed, err := controller.Remove(ctx, "1-101", models.RecordKindMaintenance, 0)
	require.NoError(t, err)
	assert.Equal(t, "Chair", removed.EquipmentName)

	_, err = controller.Remove(ctx, "1-101", models.RecordKindMaintenance, 1)
	assert.ErrorIs(t, err, services.ErrInvalidIndex)

	byID, err := controller.RemoveByID(ctx, "1-101", models.RecordKindMaintenance, resolved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk", byID.EquipmentName)

	_, err = controller.ResolveByID(ctx, "1-101", models.RecordKindMaintenance, resolved.ID)
	assert.ErrorIs(t, err, services.ErrRecordNotFound)

	records, err := controller.List(ctx, "1-101", models.RecordKindMaintenance)
	require.NoError(t, err)
	assert.Empty(t, records)

	entries, err := repos.ActivityLog.ListAll(ctx, db.SQL)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, entry := range entries {
		counts[entry.Action]++
	}
	assert.Equal(t, 2, counts["Added Maintenance Need"])
	assert.Equal(t, 1, counts["resolve"])
	assert.Equal(t, 2, counts["delete"])
}
