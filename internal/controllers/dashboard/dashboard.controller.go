package dashboardController

import (
	"context"

	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/repositories"
	"inventory/internal/services"
)

type DashboardControllerInterface interface {
	GetStats(ctx context.Context) (services.DashboardStats, error)
}

type DashboardController struct {
	aggregation *services.AggregationService
	Config      config.Config
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) DashboardControllerInterface {
	return &DashboardController{
		aggregation: services.Aggregation,
		Config:      config,
	}
}

func (c *DashboardController) GetStats(ctx context.Context) (services.DashboardStats, error) {
	return c.aggregation.ComputeStats(ctx)
}
