package database

import "fmt"

func (d *Database) RunMigrations() error {
	// Create prospectuses table
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS prospectuses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			prospectus_number TEXT UNIQUE NOT NULL,
			agency TEXT,
			location TEXT,
			state TEXT,
			estimated_sqft INTEGER DEFAULT 0,
			estimated_annual_cost REAL DEFAULT 0,
			rental_rate_per_sqft REAL,
			lease_term_years INTEGER DEFAULT 0,
			lease_expiration TEXT,
			parking_required INTEGER DEFAULT 0,
			special_requirements TEXT,
			status TEXT DEFAULT 'active',
			delineated_area TEXT,
			latitude REAL,
			longitude REAL,
			geocoding_attempted BOOLEAN DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create prospectuses table: %v", err)
	}

	// Create properties table
	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			address TEXT NOT NULL,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			total_sqft INTEGER,
			available_sqft INTEGER,
			parking_spaces INTEGER,
			year_built INTEGER,
			asking_rent_per_sqft REAL,
			latitude REAL,
			longitude REAL,
			source TEXT,
			source_url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create properties table: %v", err)
	}

	// Create matches table; the unique pair index backs the idempotent upsert
	_, err = d.db.Exec(`
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
	`)
	if err != nil {
		return fmt.Errorf("failed to create matches table: %v", err)
	}

	// Create alert configuration table
	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS alert_config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			is_enabled BOOLEAN DEFAULT 0,
			bot_token TEXT,
			chat_id TEXT,
			filters TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create alert_config table: %v", err)
	}

	// Create spatial index on property coordinates
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_coordinates
		ON properties(latitude, longitude);
	`)
	if err != nil {
		return err
	}

	// Index for match lookups per prospectus
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_matches_prospectus
		ON matches(prospectus_id, total_score);
	`)
	if err != nil {
		return err
	}

	return nil
}
