package activityController

import (
	"context"

	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/types"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

type ActivityControllerInterface interface {
	Query(ctx context.Context, filter types.ActivityFilter) (services.ActivityPage, error)
}

type ActivityController struct {
	activityLog *services.ActivityLogService
	Config      config.Config
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ActivityControllerInterface {
	return &ActivityController{
		activityLog: services.ActivityLog,
		Config:      config,
	}
}

// Query clamps the page window before delegating to the activity log.
func (c *ActivityController) Query(
	ctx context.Context,
	filter types.ActivityFilter,
) (services.ActivityPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	filter.Limit = min(filter.Limit, MaxPageSize)
	filter.Offset = max(filter.Offset, 0)

	return c.activityLog.Query(ctx, filter)
}
