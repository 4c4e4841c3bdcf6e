package initialize

import (
	"inventory/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

// InitializeTables creates the indexes gorm tags cannot express. Safe to rerun.
func InitializeTables(db database.DB, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := db.CreateIndexes(); err != nil {
		return log.Err("failed to create indexes", err)
	}

	log.Info("Table initialization complete")
	return nil
}
