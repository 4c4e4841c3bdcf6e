package services

import (
	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/events"
	"inventory/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Auth        *AuthService
	ActivityLog *ActivityLogService
	RoomRecord  *RoomRecordService
	Aggregation *AggregationService
}

func New(
	db database.DB,
	repos repositories.Repository,
	config config.Config,
	eventBus *events.EventBus,
) Service {
	return Service{
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
		Auth:        NewAuthService(config, db, repos.User),
		ActivityLog: NewActivityLogService(db, repos.ActivityLog, eventBus),
		RoomRecord:  NewRoomRecordService(db, repos.Room, config.RecordUpdateMaxRetries),
		Aggregation: NewAggregationService(db, repos.Room, repos.Equipment),
	}
}
