package controllers

import (
	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/repositories"
	"inventory/internal/services"

	activityController "inventory/internal/controllers/activity"
	dashboardController "inventory/internal/controllers/dashboard"
	inventoryController "inventory/internal/controllers/inventory"
	recordsController "inventory/internal/controllers/records"
)

type Controllers struct {
	Inventory inventoryController.InventoryControllerInterface
	Records   recordsController.RecordsControllerInterface
	Activity  activityController.ActivityControllerInterface
	Dashboard dashboardController.DashboardControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Inventory: inventoryController.New(repos, services, config, db),
		Records:   recordsController.New(repos, services, config, db),
		Activity:  activityController.New(repos, services, config, db),
		Dashboard: dashboardController.New(repos, services, config, db),
	}
}
