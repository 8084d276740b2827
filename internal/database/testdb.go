package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database for tests.
func NewTestDB() (*gorm.DB, error) {
	return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// MigrateSchema creates the matches table on a gorm connection. The
// production schema is owned by RunMigrations; this mirrors the part
// the batch processor writes to.
func MigrateSchema(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			prospectus_id INTEGER NOT NULL,
			property_id INTEGER NOT NULL,
			location_score REAL DEFAULT 0,
			size_score REAL DEFAULT 0,
			price_score REAL DEFAULT 0,
			parking_score REAL DEFAULT 0,
			total_score REAL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (prospectus_id, property_id)
		);
	`).Error
}
