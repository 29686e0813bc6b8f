// Package testutil provides throwaway databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"eventnotifier/internal/config"
	"eventnotifier/internal/infra"
	"eventnotifier/internal/models/db_models"
)

// NewDB opens a migrated sqlite file under t.TempDir and closes it on cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "event_db.sqlite"),
	}
	db, err := infra.InitDatabase(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { infra.CloseDatabase(db, zerolog.Nop()) })
	return db
}

// SeedCategories inserts the fixed category list and returns the rows.
func SeedCategories(t testing.TB, db *gorm.DB) []db_models.Category {
	t.Helper()

	categories := make([]db_models.Category, 0, len(config.FixedCategories))
	for _, name := range config.FixedCategories {
		category := db_models.Category{CategoryName: name}
		if err := db.Create(&category).Error; err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
		categories = append(categories, category)
	}
	return categories
}
