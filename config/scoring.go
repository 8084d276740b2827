package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Weights are the named sub-score weights used for the total match
// score. They must sum to 1.0; the engine never renormalizes silently.
type Weights struct {
	Location float64 `yaml:"location"`
	Size     float64 `yaml:"size"`
	Price    float64 `yaml:"price"`
	Parking  float64 `yaml:"parking"`
}

// SizeThresholds define the acceptance band around the required square
// footage, expressed as fractions of the requirement.
type SizeThresholds struct {
	// Below MinFraction of the requirement the score is 0
	MinFraction float64 `yaml:"min_fraction"`

	// Up to FullBandHigh of the requirement over-allocation still scores 100
	FullBandHigh float64 `yaml:"full_band_high"`

	// At OversizeZero of the requirement the score decays to 0
	OversizeZero float64 `yaml:"oversize_zero"`
}

// PriceThresholds control how fast the price score decays once the
// asking rent exceeds the reference rate.
type PriceThresholds struct {
	// Score lost per 1% of overage above the reference rate
	OverageDecay float64 `yaml:"overage_decay"`
}

// LocationThresholds control the proximity scoring.
type LocationThresholds struct {
	// Beyond this distance from the target point the score is 0
	MaxRadiusKm float64 `yaml:"max_radius_km"`

	// Score used when coordinates are missing on either side
	NeutralScore float64 `yaml:"neutral_score"`
}

// UrgencyThresholds define the tier boundaries in days until the
// current lease expires.
type UrgencyThresholds struct {
	HighWithinDays   int `yaml:"high_within_days"`
	MediumWithinDays int `yaml:"medium_within_days"`
}

// ScoringConfig is the full matching configuration, loaded from YAML
// and validated before the engine is built.
type ScoringConfig struct {
	Weights  Weights            `yaml:"weights"`
	Size     SizeThresholds     `yaml:"size"`
	Price    PriceThresholds    `yaml:"price"`
	Location LocationThresholds `yaml:"location"`
	Urgency  UrgencyThresholds  `yaml:"urgency"`

	// Matches with a total score above this count toward match_count
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
}

const weightTolerance = 1e-9

// DefaultScoringConfig returns the documented default thresholds.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			Location: 0.35,
			Size:     0.30,
			Price:    0.20,
			Parking:  0.15,
		},
		Size: SizeThresholds{
			MinFraction:  0.70,
			FullBandHigh: 1.30,
			OversizeZero: 2.00,
		},
		Price: PriceThresholds{
			OverageDecay: 1.0,
		},
		Location: LocationThresholds{
			MaxRadiusKm:  40,
			NeutralScore: 50,
		},
		Urgency: UrgencyThresholds{
			HighWithinDays:   180,
			MediumWithinDays: 540,
		},
		RelevanceThreshold: 0,
	}
}

// LoadScoringConfig reads the scoring configuration from the given YAML
// file. A missing file falls back to the defaults; an invalid one is an
// error, never silently corrected.
func LoadScoringConfig(path string) (ScoringConfig, error) {
	cfg := DefaultScoringConfig()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve scoring config path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("failed to read scoring config: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse scoring config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot score with.
func (c ScoringConfig) Validate() error {
	for name, w := range map[string]float64{
		"location": c.Weights.Location,
		"size":     c.Weights.Size,
		"price":    c.Weights.Price,
		"parking":  c.Weights.Parking,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("weight %q must be in [0,1], got %v", name, w)
		}
	}

	sum := c.Weights.Location + c.Weights.Size + c.Weights.Price + c.Weights.Parking
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}

	if c.Size.MinFraction <= 0 || c.Size.MinFraction >= 1 {
		return fmt.Errorf("size min_fraction must be in (0,1), got %v", c.Size.MinFraction)
	}
	if c.Size.FullBandHigh < 1 {
		return fmt.Errorf("size full_band_high must be >= 1, got %v", c.Size.FullBandHigh)
	}
	if c.Size.OversizeZero <= c.Size.FullBandHigh {
		return fmt.Errorf("size oversize_zero must exceed full_band_high (%v), got %v",
			c.Size.FullBandHigh, c.Size.OversizeZero)
	}

	if c.Price.OverageDecay <= 0 {
		return fmt.Errorf("price overage_decay must be positive, got %v", c.Price.OverageDecay)
	}

	if c.Location.MaxRadiusKm <= 0 {
		return fmt.Errorf("location max_radius_km must be positive, got %v", c.Location.MaxRadiusKm)
	}
	if c.Location.NeutralScore < 0 || c.Location.NeutralScore > 100 {
		return fmt.Errorf("location neutral_score must be in [0,100], got %v", c.Location.NeutralScore)
	}

	if c.Urgency.HighWithinDays <= 0 {
		return fmt.Errorf("urgency high_within_days must be positive, got %d", c.Urgency.HighWithinDays)
	}
	if c.Urgency.MediumWithinDays <= c.Urgency.HighWithinDays {
		return fmt.Errorf("urgency medium_within_days must exceed high_within_days (%d), got %d",
			c.Urgency.HighWithinDays, c.Urgency.MediumWithinDays)
	}

	if c.RelevanceThreshold < 0 || c.RelevanceThreshold > 100 {
		return fmt.Errorf("relevance_threshold must be in [0,100], got %v", c.RelevanceThreshold)
	}

	return nil
}
