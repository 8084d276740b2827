package models

import "time"

// AreaBounds is the delineated area a prospectus allows offers from,
// published as simple north/south/east/west limits.
type AreaBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Prospectus is a government-published notice of a future lease need.
type Prospectus struct {
	ID                  int64       `json:"id"`
	ProspectusNumber    string      `json:"prospectus_number"`
	Agency              string      `json:"agency"`
	Location            string      `json:"location"`
	State               string      `json:"state"`
	EstimatedSqft       int         `json:"estimated_sqft"`
	EstimatedAnnualCost float64     `json:"estimated_annual_cost"`
	RentalRatePerSqft   *float64    `json:"rental_rate_per_sqft"`
	LeaseTermYears      int         `json:"lease_term_years"`
	LeaseExpiration     Expiration  `json:"lease_expiration"`
	ParkingRequired     int         `json:"parking_required"`
	SpecialRequirements string      `json:"special_requirements"`
	Status              string      `json:"status"`
	DelineatedArea      *AreaBounds `json:"delineated_area"`
	Latitude            *float64    `json:"latitude"`
	Longitude           *float64    `json:"longitude"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// Prospectus status values.
const (
	StatusActive    = "active"
	StatusAwarded   = "awarded"
	StatusCancelled = "cancelled"
)
