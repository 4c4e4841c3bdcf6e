package middleware

import (
	"inventory/config"
	"inventory/internal/database"
	"inventory/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB     database.DB
	auth   *services.AuthService
	Config config.Config
	log    logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	services services.Service,
) Middleware {
	return Middleware{
		DB:     db,
		auth:   services.Auth,
		Config: config,
		log:    logger.New("middleware"),
	}
}
