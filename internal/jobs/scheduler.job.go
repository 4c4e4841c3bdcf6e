package jobs

import (
	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/repositories"
	"inventory/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	db database.DB,
	repos repositories.Repository,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	orphanSweepJob := NewOrphanSweepJob(db, repos.Equipment, services.Hourly)
	if err := schedulerService.AddJob(orphanSweepJob); err != nil {
		return log.Err("failed to register orphan sweep job", err)
	}

	return nil
}
