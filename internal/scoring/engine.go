package scoring

import (
	"math"

	"leasehawk/server/config"
	"leasehawk/server/internal/geometry"
	"leasehawk/server/internal/models"
)

// Note flags attached to a breakdown when input data is incomplete.
const (
	NoteMissingSize        = "missing size data"
	NoteMissingRent        = "missing rent data"
	NoteMissingCoordinates = "missing coordinates"
	NoteMissingParking     = "missing parking data"
	NoteMarketRate         = "market reference rate used"
	NoteOutsideArea        = "outside delineated area"
)

// Breakdown holds the four sub-scores and the weighted total for one
// prospectus/property pair. All values are in [0,100].
type Breakdown struct {
	LocationScore float64  `json:"location_score"`
	SizeScore     float64  `json:"size_score"`
	PriceScore    float64  `json:"price_score"`
	ParkingScore  float64  `json:"parking_score"`
	TotalScore    float64  `json:"total_score"`
	Notes         []string `json:"notes,omitempty"`
}

// Engine computes match scores from a validated scoring configuration.
// Score is a pure function: no I/O, no shared state, safe to call
// concurrently across pairs.
type Engine struct {
	cfg config.ScoringConfig
}

// NewEngine builds an engine. The configuration must have been
// validated at load time; invalid weights are a programming error here.
func NewEngine(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's scoring configuration.
func (e *Engine) Config() config.ScoringConfig {
	return e.cfg
}

// Score computes the full breakdown for a prospectus/property pair.
// Missing input data degrades to neutral or zero sub-scores with a note
// flag; it never fails the computation.
func (e *Engine) Score(p models.Prospectus, prop models.Property) Breakdown {
	var b Breakdown

	b.SizeScore = e.sizeScore(p, prop, &b.Notes)
	b.PriceScore = e.priceScore(p, prop, &b.Notes)
	b.LocationScore = e.locationScore(p, prop, &b.Notes)
	b.ParkingScore = e.parkingScore(p, prop, &b.Notes)

	w := e.cfg.Weights
	total := w.Location*b.LocationScore +
		w.Size*b.SizeScore +
		w.Price*b.PriceScore +
		w.Parking*b.ParkingScore
	b.TotalScore = clamp(total)

	return b
}

// sizeScore compares available square footage against the requirement.
// 100 inside [required, full_band_high*required], linear ramps on both
// sides, 0 below min_fraction*required or beyond oversize_zero*required.
func (e *Engine) sizeScore(p models.Prospectus, prop models.Property, notes *[]string) float64 {
	if p.EstimatedSqft <= 0 || prop.AvailableSqft == nil {
		*notes = append(*notes, NoteMissingSize)
		return 0
	}

	ratio := float64(*prop.AvailableSqft) / float64(p.EstimatedSqft)
	s := e.cfg.Size

	switch {
	case ratio < s.MinFraction:
		return 0
	case ratio < 1:
		return clamp(100 * (ratio - s.MinFraction) / (1 - s.MinFraction))
	case ratio <= s.FullBandHigh:
		return 100
	case ratio < s.OversizeZero:
		return clamp(100 * (s.OversizeZero - ratio) / (s.OversizeZero - s.FullBandHigh))
	default:
		return 0
	}
}

// priceScore compares asking rent against the reference rate: the
// prospectus rate when published, otherwise the market table.
func (e *Engine) priceScore(p models.Prospectus, prop models.Property, notes *[]string) float64 {
	if prop.AskingRentPerSqft == nil {
		*notes = append(*notes, NoteMissingRent)
		return 0
	}

	reference := p.RentalRatePerSqft
	if reference == nil {
		reference = config.GetMarketRate(p.Location, p.State)
		if reference != nil {
			*notes = append(*notes, NoteMarketRate)
		}
	}
	if reference == nil || *reference <= 0 {
		*notes = append(*notes, NoteMissingRent)
		return 0
	}

	rent := *prop.AskingRentPerSqft
	if rent <= *reference {
		return 100
	}

	overage := (rent - *reference) / *reference
	return clamp(100 - overage*100*e.cfg.Price.OverageDecay)
}

// locationScore decays linearly with distance from the prospectus
// target point, hitting 0 at the configured radius. Missing coordinates
// on either side score the configured neutral midpoint.
func (e *Engine) locationScore(p models.Prospectus, prop models.Property, notes *[]string) float64 {
	if p.Latitude == nil || p.Longitude == nil || prop.Latitude == nil || prop.Longitude == nil {
		*notes = append(*notes, NoteMissingCoordinates)
		return e.cfg.Location.NeutralScore
	}

	if p.DelineatedArea != nil && !geometry.Contains(*p.DelineatedArea, *prop.Latitude, *prop.Longitude) {
		*notes = append(*notes, NoteOutsideArea)
		return 0
	}

	km := geometry.DistanceKm(*p.Latitude, *p.Longitude, *prop.Latitude, *prop.Longitude)
	return clamp(100 * (1 - km/e.cfg.Location.MaxRadiusKm))
}

// parkingScore is the supply/requirement ratio capped at 100. No
// requirement is a full score; unknown supply is neutral.
func (e *Engine) parkingScore(p models.Prospectus, prop models.Property, notes *[]string) float64 {
	if p.ParkingRequired <= 0 {
		return 100
	}
	if prop.ParkingSpaces == nil {
		*notes = append(*notes, NoteMissingParking)
		return 50
	}

	ratio := float64(*prop.ParkingSpaces) / float64(p.ParkingRequired)
	return math.Min(100, ratio*100)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
