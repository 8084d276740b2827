package models

// Opportunity is one prospectus enriched with match statistics and an
// urgency tier, shaped for the dashboard cards and map markers.
type Opportunity struct {
	ID                  int64   `json:"id"`
	ProspectusNumber    string  `json:"prospectus_number"`
	Agency              string  `json:"agency"`
	Location            string  `json:"location"`
	SquareFootage       int     `json:"square_footage"`
	AnnualValue         float64 `json:"annual_value"`
	LeaseExpiration     string  `json:"lease_expiration"`
	DaysUntilExpiration *int    `json:"days_until_expiration"`
	Urgency             string  `json:"urgency"`
	MatchCount          int     `json:"match_count"`
	BestMatchScore      float64 `json:"best_match_score"`
	AvgMatchScore       float64 `json:"avg_match_score"`
	ParkingRequired     int     `json:"parking_required"`
	SpecialRequirements string  `json:"special_requirements"`
}

// PipelineSummary aggregates the whole pipeline for the dashboard header.
type PipelineSummary struct {
	TotalOpportunities int     `json:"total_opportunities"`
	TotalAnnualValue   float64 `json:"total_annual_value"`
	HighUrgency        int     `json:"high_urgency"`
	MediumUrgency      int     `json:"medium_urgency"`
	LowUrgency         int     `json:"low_urgency"`
}

// Pipeline is the full aggregator output.
type Pipeline struct {
	Summary       PipelineSummary `json:"pipeline_summary"`
	Opportunities []Opportunity   `json:"opportunities"`
}

// DashboardStats holds the key counters for the stats endpoint.
type DashboardStats struct {
	TotalOpportunities int     `json:"total_opportunities"`
	TotalProperties    int     `json:"total_properties"`
	TotalMatches       int     `json:"total_matches"`
	PipelineValue      float64 `json:"pipeline_value"`
	HighUrgencyCount   int     `json:"high_urgency_count"`
	MediumUrgencyCount int     `json:"medium_urgency_count"`
	TopMatchScore      float64 `json:"top_match_score"`
}
