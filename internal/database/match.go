package database

import (
	"database/sql"

	"leasehawk/server/internal/models"
)

const matchSelect = `
	SELECT id, prospectus_id, property_id, location_score, size_score,
	       price_score, parking_score, total_score, notes, created_at, updated_at
	FROM matches
`

func (d *Database) GetMatchesByProspectus(prospectusID int64) ([]models.Match, error) {
	rows, err := d.db.Query(matchSelect+`
		WHERE prospectus_id = ?
		ORDER BY total_score DESC
	`, prospectusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetMatchesGrouped loads all matches keyed by prospectus id, the bulk
// input for a pipeline aggregation pass.
func (d *Database) GetMatchesGrouped() (map[int64][]models.Match, error) {
	rows, err := d.db.Query(matchSelect + " ORDER BY prospectus_id, total_score DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]models.Match)
	for _, m := range matches {
		grouped[m.ProspectusID] = append(grouped[m.ProspectusID], m)
	}
	return grouped, nil
}

// GetBestScoresByProperty returns the best match total per property id,
// used for the map layer.
func (d *Database) GetBestScoresByProperty() (map[int64]float64, error) {
	rows, err := d.db.Query(`
		SELECT property_id, MAX(total_score)
		FROM matches
		GROUP BY property_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[int64]float64)
	for rows.Next() {
		var id int64
		var score float64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, err
		}
		scores[id] = score
	}
	return scores, rows.Err()
}

func (d *Database) CountMatches() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count)
	return count, err
}

func (d *Database) GetTopMatchScore() (float64, error) {
	var score sql.NullFloat64
	err := d.db.QueryRow("SELECT MAX(total_score) FROM matches").Scan(&score)
	if err != nil {
		return 0, err
	}
	if !score.Valid {
		return 0, nil
	}
	return score.Float64, nil
}

func (d *Database) CountProspectuses(status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = d.db.QueryRow("SELECT COUNT(*) FROM prospectuses").Scan(&count)
	} else {
		err = d.db.QueryRow("SELECT COUNT(*) FROM prospectuses WHERE status = ?", status).Scan(&count)
	}
	return count, err
}

func scanMatches(rows *sql.Rows) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		var m models.Match
		var notes sql.NullString
		var createdAt, updatedAt sql.NullString

		err := rows.Scan(
			&m.ID,
			&m.ProspectusID,
			&m.PropertyID,
			&m.LocationScore,
			&m.SizeScore,
			&m.PriceScore,
			&m.ParkingScore,
			&m.TotalScore,
			&notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		if notes.Valid {
			m.Notes = notes.String
		}
		if createdAt.Valid {
			m.CreatedAt = parseTimestamp(createdAt.String)
		}
		if updatedAt.Valid {
			m.UpdatedAt = parseTimestamp(updatedAt.String)
		}

		matches = append(matches, m)
	}
	return matches, rows.Err()
}
