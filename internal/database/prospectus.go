package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"leasehawk/server/internal/models"
)

var prospectusColumns = []string{
	"id",
	"prospectus_number",
	"agency",
	"location",
	"state",
	"estimated_sqft",
	"estimated_annual_cost",
	"rental_rate_per_sqft",
	"lease_term_years",
	"lease_expiration",
	"parking_required",
	"special_requirements",
	"status",
	"delineated_area",
	"latitude",
	"longitude",
	"created_at",
	"updated_at",
}

// ProspectusFilter narrows the prospectus listing. Zero values mean
// "no filter".
type ProspectusFilter struct {
	Agency   string
	State    string
	Status   string
	MinValue float64
}

func (d *Database) GetProspectuses(filter ProspectusFilter) ([]models.Prospectus, error) {
	builder := sq.Select(prospectusColumns...).From("prospectuses")

	if filter.Agency != "" {
		builder = builder.Where(sq.Eq{"agency": filter.Agency})
	}
	if filter.State != "" {
		builder = builder.Where("LOWER(state) = LOWER(?)", filter.State)
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.MinValue > 0 {
		builder = builder.Where(sq.GtOrEq{"estimated_annual_cost": filter.MinValue})
	}

	query, args, err := builder.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build prospectus query: %v", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prospectuses []models.Prospectus
	for rows.Next() {
		p, err := scanProspectus(rows)
		if err != nil {
			return nil, err
		}
		prospectuses = append(prospectuses, p)
	}
	return prospectuses, rows.Err()
}

func (d *Database) GetProspectusByID(id int64) (*models.Prospectus, error) {
	query, args, err := sq.Select(prospectusColumns...).
		From("prospectuses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build prospectus query: %v", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	p, err := scanProspectus(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *Database) InsertProspectus(p *models.Prospectus) (int64, error) {
	var area interface{}
	if p.DelineatedArea != nil {
		data, err := json.Marshal(p.DelineatedArea)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal delineated area: %v", err)
		}
		area = string(data)
	}

	status := p.Status
	if status == "" {
		status = models.StatusActive
	}

	result, err := d.db.Exec(`
		INSERT INTO prospectuses
		(prospectus_number, agency, location, state, estimated_sqft, estimated_annual_cost,
		 rental_rate_per_sqft, lease_term_years, lease_expiration, parking_required,
		 special_requirements, status, delineated_area, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ProspectusNumber,
		p.Agency,
		p.Location,
		p.State,
		p.EstimatedSqft,
		p.EstimatedAnnualCost,
		p.RentalRatePerSqft,
		p.LeaseTermYears,
		p.LeaseExpiration.String(),
		p.ParkingRequired,
		p.SpecialRequirements,
		status,
		area,
		p.Latitude,
		p.Longitude,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert prospectus: %w", err)
	}

	return result.LastInsertId()
}

// UpdateProspectusCoordinates stores a geocoding result and marks the
// row as attempted.
func (d *Database) UpdateProspectusCoordinates(id int64, lat, lon float64) error {
	_, err := d.db.Exec(`
		UPDATE prospectuses
		SET latitude = ?, longitude = ?, geocoding_attempted = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, lat, lon, id)
	return err
}

func scanProspectus(rows *sql.Rows) (models.Prospectus, error) {
	var p models.Prospectus
	var prospectusNumber, agency, location, state, expiration sql.NullString
	var specialReqs, status, area sql.NullString
	var createdAt, updatedAt sql.NullString
	var estimatedSqft, leaseTerm, parking sql.NullInt64
	var annualCost, rentalRate sql.NullFloat64
	var latitude, longitude sql.NullFloat64

	err := rows.Scan(
		&p.ID,
		&prospectusNumber,
		&agency,
		&location,
		&state,
		&estimatedSqft,
		&annualCost,
		&rentalRate,
		&leaseTerm,
		&expiration,
		&parking,
		&specialReqs,
		&status,
		&area,
		&latitude,
		&longitude,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return p, err
	}

	if prospectusNumber.Valid {
		p.ProspectusNumber = prospectusNumber.String
	}
	if agency.Valid {
		p.Agency = agency.String
	}
	if location.Valid {
		p.Location = location.String
	}
	if state.Valid {
		p.State = state.String
	}
	if specialReqs.Valid {
		p.SpecialRequirements = specialReqs.String
	}
	if status.Valid {
		p.Status = status.String
	}

	if estimatedSqft.Valid {
		p.EstimatedSqft = int(estimatedSqft.Int64)
	}
	if leaseTerm.Valid {
		p.LeaseTermYears = int(leaseTerm.Int64)
	}
	if parking.Valid {
		p.ParkingRequired = int(parking.Int64)
	}
	if annualCost.Valid {
		p.EstimatedAnnualCost = annualCost.Float64
	}
	if rentalRate.Valid {
		rate := rentalRate.Float64
		p.RentalRatePerSqft = &rate
	}

	if latitude.Valid {
		lat := latitude.Float64
		p.Latitude = &lat
	}
	if longitude.Valid {
		lon := longitude.Float64
		p.Longitude = &lon
	}

	// Unparseable dates stay preserved as the raw value
	if expiration.Valid {
		p.LeaseExpiration = models.ParseExpiration(expiration.String)
	}

	if area.Valid && area.String != "" {
		var bounds models.AreaBounds
		if err := json.Unmarshal([]byte(area.String), &bounds); err == nil {
			p.DelineatedArea = &bounds
		}
	}

	if createdAt.Valid {
		p.CreatedAt = parseTimestamp(createdAt.String)
	}
	if updatedAt.Valid {
		p.UpdatedAt = parseTimestamp(updatedAt.String)
	}

	return p, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
