package database

import (
	"inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

func Models() []any {
	return []any{
		&models.User{},
		&models.Floor{},
		&models.Room{},
		&models.Equipment{},
		&models.ActivityLog{},
	}
}

// MigrateModels runs gorm AutoMigrate for every persisted model.
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range Models() {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes adds indexes gorm tags cannot express.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_timestamp_desc ON activity_logs(\"timestamp\" DESC NULLS LAST)",
		"CREATE INDEX IF NOT EXISTS idx_activity_logs_action_lower ON activity_logs(LOWER(action))",
		"CREATE INDEX IF NOT EXISTS idx_rooms_floor ON rooms(floor)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
