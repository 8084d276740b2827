package models

import "time"

// Match is the scored pairing between one prospectus and one property.
// It is derived data: recomputed whenever either side changes and
// upserted on the (prospectus_id, property_id) pair.
type Match struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	ProspectusID  int64     `json:"prospectus_id"`
	PropertyID    int64     `json:"property_id"`
	LocationScore float64   `json:"location_score"`
	SizeScore     float64   `json:"size_score"`
	PriceScore    float64   `json:"price_score"`
	ParkingScore  float64   `json:"parking_score"`
	TotalScore    float64   `json:"total_score"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName keeps gorm on the same table the raw SQL layer uses.
func (Match) TableName() string {
	return "matches"
}
