package repositories

import (
	"context"
	"time"

	. "inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *ActivityLog) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]ActivityLog, error)
}

type activityLogRepository struct {
	log logger.Logger
}

func NewActivityLogRepository() ActivityLogRepository {
	return &activityLogRepository{
		log: logger.New("activityLogRepository"),
	}
}

// Create stamps the entry with the server clock when no timestamp was supplied.
func (r *activityLogRepository) Create(ctx context.Context, tx *gorm.DB, entry *ActivityLog) error {
	log := r.log.Function("Create")

	if entry.Timestamp == nil {
		now := time.Now().UTC()
		entry.Timestamp = &now
	}

	if err := gorm.G[ActivityLog](tx).Create(ctx, entry); err != nil {
		return log.Err("failed to create activity log", storeError(err), "action", entry.Action)
	}

	return nil
}

// ListAll returns every entry unsorted. Display ordering is applied by the caller.
func (r *activityLogRepository) ListAll(ctx context.Context, tx *gorm.DB) ([]ActivityLog, error) {
	log := r.log.Function("ListAll")

	entries, err := gorm.G[ActivityLog](tx).Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list activity logs", storeError(err))
	}

	return entries, nil
}
