package models

import "time"

// Property is a candidate commercial space entered manually or imported
// from a listing source.
type Property struct {
	ID                int64     `json:"id"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	ZipCode           string    `json:"zip_code"`
	TotalSqft         *int      `json:"total_sqft"`
	AvailableSqft     *int      `json:"available_sqft"`
	ParkingSpaces     *int      `json:"parking_spaces"`
	YearBuilt         *int      `json:"year_built"`
	AskingRentPerSqft *float64  `json:"asking_rent_per_sqft"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	Source            string    `json:"source"`
	SourceURL         string    `json:"source_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
