package app

import (
	"context"

	"inventory/config"
	"inventory/internal/controllers"
	"inventory/internal/database"
	"inventory/internal/events"
	"inventory/internal/handlers/middleware"
	"inventory/internal/jobs"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	return Build(config, db)
}

// Build wires repositories, services, controllers and the live feed on top of an
// already opened database.
func Build(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("Build")

	eventBus := events.New(db.Cache.Events)
	repos := repositories.New(db)
	svc := services.New(db, repos, config, eventBus)
	ctrls := controllers.New(svc, repos, config, db)

	websocket, err := websockets.New(db, eventBus, config, svc.Auth, ctrls.Activity)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	if err := jobs.RegisterAllJobs(svc.Scheduler, config, db, repos); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware.New(db, config, svc),
		Websocket:   websocket,
		EventBus:    eventBus,
		Config:      config,
		Repos:       repos,
		Services:    svc,
		Controllers: ctrls,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Auth,
		a.Services.ActivityLog,
		a.Services.RoomRecord,
		a.Services.Aggregation,
		a.Controllers.Inventory,
		a.Controllers.Records,
		a.Controllers.Activity,
		a.Controllers.Dashboard,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

// Start launches background jobs.
func (a *App) Start(ctx context.Context) error {
	if !a.Config.SchedulerEnabled {
		return nil
	}
	return a.Services.Scheduler.Start(ctx)
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
