// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"inventory/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database that lives for the duration of t.
func NewDB(t testing.TB) database.DB {
	t.Helper()

	sql, err := gorm.Open(sqlite.Open("file::memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := sql.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.NewWithSQL(sql)
	require.NoError(t, db.MigrateModels())

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
