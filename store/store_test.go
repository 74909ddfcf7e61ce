package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/joejung/mira/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testStore opens a fresh in-memory database with the full schema.
func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return New(db)
}
