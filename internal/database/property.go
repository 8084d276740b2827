package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"leasehawk/server/internal/models"
)

var propertyColumns = []string{
	"id",
	"address",
	"city",
	"state",
	"zip_code",
	"total_sqft",
	"available_sqft",
	"parking_spaces",
	"year_built",
	"asking_rent_per_sqft",
	"latitude",
	"longitude",
	"source",
	"source_url",
	"created_at",
	"updated_at",
}

// PropertyFilter narrows the property listing. Zero values mean
// "no filter".
type PropertyFilter struct {
	City    string
	State   string
	MinSqft int
}

func (d *Database) GetProperties(filter PropertyFilter) ([]models.Property, error) {
	builder := sq.Select(propertyColumns...).From("properties")

	if filter.City != "" {
		builder = builder.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.State != "" {
		builder = builder.Where("LOWER(state) = LOWER(?)", filter.State)
	}
	if filter.MinSqft > 0 {
		builder = builder.Where(sq.GtOrEq{"available_sqft": filter.MinSqft})
	}

	query, args, err := builder.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build property query: %v", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (d *Database) InsertProperty(p *models.Property) (int64, error) {
	result, err := d.db.Exec(`
		INSERT INTO properties
		(address, city, state, zip_code, total_sqft, available_sqft, parking_spaces,
		 year_built, asking_rent_per_sqft, latitude, longitude, source, source_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.TotalSqft,
		p.AvailableSqft,
		p.ParkingSpaces,
		p.YearBuilt,
		p.AskingRentPerSqft,
		p.Latitude,
		p.Longitude,
		p.Source,
		p.SourceURL,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert property: %w", err)
	}

	return result.LastInsertId()
}

func (d *Database) CountProperties() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count)
	return count, err
}

func scanProperty(rows *sql.Rows) (models.Property, error) {
	var p models.Property
	var address, city, state, zipCode, source, sourceURL sql.NullString
	var createdAt, updatedAt sql.NullString
	var totalSqft, availableSqft, parkingSpaces, yearBuilt sql.NullInt64
	var askingRent, latitude, longitude sql.NullFloat64

	err := rows.Scan(
		&p.ID,
		&address,
		&city,
		&state,
		&zipCode,
		&totalSqft,
		&availableSqft,
		&parkingSpaces,
		&yearBuilt,
		&askingRent,
		&latitude,
		&longitude,
		&source,
		&sourceURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return p, err
	}

	if address.Valid {
		p.Address = address.String
	}
	if city.Valid {
		p.City = city.String
	}
	if state.Valid {
		p.State = state.String
	}
	if zipCode.Valid {
		p.ZipCode = zipCode.String
	}
	if source.Valid {
		p.Source = source.String
	}
	if sourceURL.Valid {
		p.SourceURL = sourceURL.String
	}

	if totalSqft.Valid {
		v := int(totalSqft.Int64)
		p.TotalSqft = &v
	}
	if availableSqft.Valid {
		v := int(availableSqft.Int64)
		p.AvailableSqft = &v
	}
	if parkingSpaces.Valid {
		v := int(parkingSpaces.Int64)
		p.ParkingSpaces = &v
	}
	if yearBuilt.Valid {
		v := int(yearBuilt.Int64)
		p.YearBuilt = &v
	}
	if askingRent.Valid {
		v := askingRent.Float64
		p.AskingRentPerSqft = &v
	}
	if latitude.Valid {
		v := latitude.Float64
		p.Latitude = &v
	}
	if longitude.Valid {
		v := longitude.Float64
		p.Longitude = &v
	}

	if createdAt.Valid {
		p.CreatedAt = parseTimestamp(createdAt.String)
	}
	if updatedAt.Valid {
		p.UpdatedAt = parseTimestamp(updatedAt.String)
	}

	return p, nil
}
