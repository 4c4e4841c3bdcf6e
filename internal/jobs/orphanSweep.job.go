package jobs

import (
	"context"

	"inventory/internal/database"
	"inventory/internal/repositories"
	"inventory/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// OrphanSweepJob deletes equipment left behind by room deletions that did not finish.
type OrphanSweepJob struct {
	db        database.DB
	equipment repositories.EquipmentRepository
	schedule  services.Schedule
	log       logger.Logger
}

func NewOrphanSweepJob(
	db database.DB,
	equipment repositories.EquipmentRepository,
	schedule services.Schedule,
) *OrphanSweepJob {
	return &OrphanSweepJob{
		db:        db,
		equipment: equipment,
		schedule:  schedule,
		log:       logger.New("orphanSweepJob"),
	}
}

func (j *OrphanSweepJob) Name() string {
	return "OrphanEquipmentSweep"
}

func (j *OrphanSweepJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	removed, err := j.equipment.DeleteOrphans(ctx, j.db.SQLWithContext(ctx))
	if err != nil {
		return log.Err("orphan sweep failed", err)
	}

	if removed > 0 {
		log.Info("Removed orphaned equipment", "count", removed)
	}
	return nil
}

func (j *OrphanSweepJob) Schedule() services.Schedule {
	return j.schedule
}
