package infra

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventnotifier/internal/config"
	"eventnotifier/internal/models/db_models"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "event_db.sqlite?_pragma=foreign_keys(1)", sqliteDSN("event_db.sqlite"))
	assert.Equal(t, "file:x.db?cache=shared&_pragma=foreign_keys(1)", sqliteDSN("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", sqliteDSN("x.db?_pragma=foreign_keys(0)"))
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector("mysql", "dsn")
	assert.Error(t, err)
}

func TestInitDatabaseIsIdempotent(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "event_db.sqlite"),
	}
	log := zerolog.Nop()

	db, err := InitDatabase(cfg, log)
	require.NoError(t, err)
	require.NoError(t, db.Create(&db_models.Category{CategoryName: "축제"}).Error)
	CloseDatabase(db, log)

	db, err = InitDatabase(cfg, log)
	require.NoError(t, err)
	defer CloseDatabase(db, log)

	var count int64
	require.NoError(t, db.Model(&db_models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.True(t, db.Migrator().HasTable(&db_models.Event{}))
}

func TestForeignKeyIsEnforced(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "event_db.sqlite"),
	}
	db, err := InitDatabase(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer CloseDatabase(db, zerolog.Nop())

	var eventSQL, categorySQL string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", "event").Scan(&eventSQL).Error)
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", "category").Scan(&categorySQL).Error)
	assert.Contains(t, eventSQL, "FOREIGN KEY")
	assert.Contains(t, eventSQL, "REFERENCES `category`")
	assert.NotContains(t, categorySQL, "FOREIGN KEY")

	category := db_models.Category{CategoryName: "축제"}
	require.NoError(t, db.Create(&category).Error)

	err = db.Omit("Category").Create(&db_models.Event{Title: "orphan", Location: "nowhere", CategoryID: 42}).Error
	assert.Error(t, err)

	event := db_models.Event{Title: "Spring Festival", Location: "Seoul Forest", CategoryID: category.CategoryID}
	require.NoError(t, db.Omit("Category").Create(&event).Error)

	// referenced categories cannot be removed
	assert.Error(t, db.Delete(&db_models.Category{}, category.CategoryID).Error)
}
