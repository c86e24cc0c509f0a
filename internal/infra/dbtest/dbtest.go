// Package dbtest opens throwaway databases for package tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurora/internal/config"
	"aurora/internal/infra"
)

// New returns a migrated, isolated in-memory sqlite database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := infra.InitDatabase(config.DatabaseConfig{Driver: "sqlite", SQLitePath: dsn}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	// one connection keeps the in-memory database free of shared-cache lock errors
	sqlDB.SetMaxOpenConns(1)

	if err := infra.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() { infra.CloseDatabase(db, zap.NewNop()) })
	return db
}
