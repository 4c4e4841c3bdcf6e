package jobs

import (
	"context"
	"testing"

	"inventory/config"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrphanSweepJob_Execute(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repos := repositories.New(db)

	require.NoError(t, repos.Room.Create(ctx, db.SQL, &models.Room{Floor: "1", Number: "101"}))
	for _, roomID := range []string{"1-101", "1-102", "1-102"} {
		require.NoError(t, repos.Equipment.Create(ctx, db.SQL, &models.Equipment{
			RoomID:    roomID,
			Floor:     "1",
			Name:      "Desk",
			Quantity:  1,
			Condition: models.EquipmentConditionGood,
			Status:    models.EquipmentStatusAvailable,
		}))
	}

	job := NewOrphanSweepJob(db, repos.Equipment, services.Hourly)
	assert.Equal(t, "OrphanEquipmentSweep", job.Name())
	assert.Equal(t, services.Hourly, job.Schedule())
	require.NoError(t, job.Execute(ctx))

	kept, err := repos.Equipment.ListByRoom(ctx, db.SQL, "1-101")
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	gone, err := repos.Equipment.ListByRoom(ctx, db.SQL, "1-102")
	require.NoError(t, err)
	assert.Empty(t, gone)
}

func TestRegisterAllJobs(t *testing.T) {
	db := testutil.NewDB(t)
	repos := repositories.New(db)

	t.Run("disabled", func(t *testing.T) {
		scheduler := services.NewSchedulerService()
		require.NoError(t, RegisterAllJobs(scheduler, config.Config{SchedulerEnabled: false}, db, repos))
		assert.Zero(t, scheduler.GetJobCount())
	})

	t.Run("enabled", func(t *testing.T) {
		scheduler := services.NewSchedulerService()
		require.NoError(t, RegisterAllJobs(scheduler, config.Config{SchedulerEnabled: true}, db, repos))
		assert.Equal(t, 1, scheduler.GetJobCount())
	})
}
