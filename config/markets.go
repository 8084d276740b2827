package config

import "strings"

// Market holds the reference office rent and map center for a metro
// area. The rate is used as the price-score reference when a prospectus
// does not publish its own rental rate.
type Market struct {
	Name        string    `json:"name"`
	State       string    `json:"state"`
	RatePerSqft float64   `json:"rate_per_sqft"`
	Center      []float64 `json:"center"`
	ZoomLevel   int       `json:"zoom_level"`
}

// SupportedMarkets is the list of metro areas with known reference rates.
var SupportedMarkets = []Market{
	{
		Name:        "washington",
		State:       "DC",
		RatePerSqft: 48.50,
		Center:      []float64{38.9072, -77.0369},
		ZoomLevel:   12,
	},
	{
		Name:        "baltimore",
		State:       "MD",
		RatePerSqft: 27.00,
		Center:      []float64{39.2904, -76.6122},
		ZoomLevel:   12,
	},
	{
		Name:        "denver",
		State:       "CO",
		RatePerSqft: 31.50,
		Center:      []float64{39.7392, -104.9903},
		ZoomLevel:   12,
	},
	{
		Name:        "columbus",
		State:       "OH",
		RatePerSqft: 19.25,
		Center:      []float64{39.9612, -82.9988},
		ZoomLevel:   12,
	},
	{
		Name:        "salt lake city",
		State:       "UT",
		RatePerSqft: 23.75,
		Center:      []float64{40.7608, -111.8910},
		ZoomLevel:   12,
	},
	// Add more markets here as needed
}

// GetMarketNames returns a list of supported market names.
func GetMarketNames() []string {
	names := make([]string, len(SupportedMarkets))
	for i, market := range SupportedMarkets {
		names[i] = market.Name
	}
	return names
}

// GetMarketByName returns a market configuration by name.
func GetMarketByName(name string) *Market {
	for _, market := range SupportedMarkets {
		if strings.EqualFold(market.Name, name) {
			return &market
		}
	}
	return nil
}

// GetMarketRate resolves a reference rent for a prospectus location.
// The location is free text ("Washington, DC" or a county name), so the
// lookup matches on the market name appearing in the location, state
// permitting. Returns nil when no market covers the location.
func GetMarketRate(location, state string) *float64 {
	loc := strings.ToLower(location)
	for _, market := range SupportedMarkets {
		if market.State != "" && state != "" && !strings.EqualFold(market.State, state) {
			continue
		}
		if strings.Contains(loc, market.Name) {
			rate := market.RatePerSqft
			return &rate
		}
	}
	return nil
}
