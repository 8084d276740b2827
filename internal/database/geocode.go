package database

import (
	"fmt"

	"leasehawk/server/internal/geocoding"
)

// UpdateMissingCoordinates geocodes the target point of every
// prospectus that has no coordinates yet, in transactional batches.
// Failed lookups mark the row as attempted so it is not retried on
// every pass.
func (d *Database) UpdateMissingCoordinates(geocoder *geocoding.Geocoder) error {
	// Get total count of prospectuses needing geocoding
	var totalCount int
	err := d.db.QueryRow(`
		SELECT COUNT(*)
		FROM prospectuses
		WHERE (latitude IS NULL OR longitude IS NULL)
		AND geocoding_attempted = 0
		AND location IS NOT NULL
		AND location != ''
	`).Scan(&totalCount)
	if err != nil {
		return fmt.Errorf("failed to count prospectuses: %v", err)
	}

	if totalCount == 0 {
		return nil
	}

	var processed, failed int
	batchSize := 10

	// Process prospectuses in batches
	for processed+failed < totalCount {
		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %v", err)
		}

		rows, err := tx.Query(`
			SELECT id, location, state
			FROM prospectuses
			WHERE (latitude IS NULL OR longitude IS NULL)
			AND geocoding_attempted = 0
			AND location IS NOT NULL
			AND location != ''
			LIMIT ?
		`, batchSize)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to query prospectuses: %v", err)
		}

		stmt, err := tx.Prepare(`
			UPDATE prospectuses
			SET latitude = ?, longitude = ?, geocoding_attempted = 1
			WHERE id = ?
		`)
		if err != nil {
			rows.Close()
			tx.Rollback()
			return fmt.Errorf("failed to prepare statement: %v", err)
		}

		failedStmt, err := tx.Prepare(`
			UPDATE prospectuses
			SET geocoding_attempted = 1
			WHERE id = ?
		`)
		if err != nil {
			rows.Close()
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("failed to prepare failed statement: %v", err)
		}

		type target struct {
			id              int64
			location, state string
		}
		var targets []target
		for rows.Next() {
			var t target
			if err := rows.Scan(&t.id, &t.location, &t.state); err != nil {
				rows.Close()
				stmt.Close()
				failedStmt.Close()
				tx.Rollback()
				return fmt.Errorf("failed to scan row: %v", err)
			}
			targets = append(targets, t)
		}
		rows.Close()

		var batchProcessed int
		for _, t := range targets {
			lat, lon, err := geocoder.GeocodeLocation(t.location, t.state)
			if err != nil {
				// Mark as attempted even if geocoding failed
				if _, err := failedStmt.Exec(t.id); err != nil {
					stmt.Close()
					failedStmt.Close()
					tx.Rollback()
					return fmt.Errorf("failed to mark geocoding attempt: %v", err)
				}
				failed++
				batchProcessed++
				continue
			}

			if _, err := stmt.Exec(lat, lon, t.id); err != nil {
				stmt.Close()
				failedStmt.Close()
				tx.Rollback()
				return fmt.Errorf("failed to update coordinates: %v", err)
			}
			processed++
			batchProcessed++
		}

		stmt.Close()
		failedStmt.Close()

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %v", err)
		}

		// If we didn't process any items in this batch, something might be wrong
		if batchProcessed == 0 {
			return fmt.Errorf("no prospectuses processed in batch, possible data inconsistency. Total processed: %d/%d",
				processed+failed, totalCount)
		}
	}

	return nil
}
