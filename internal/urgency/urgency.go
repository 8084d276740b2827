package urgency

import (
	"encoding/json"
	"time"

	"leasehawk/server/config"
	"leasehawk/server/internal/models"
)

// Tier is the priority bucket derived from how soon the current lease
// expires.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

// String returns the string representation of a Tier.
func (t Tier) String() string {
	switch t {
	case High:
		return "High"
	case Medium:
		return "Medium"
	default:
		return "Low"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Classify derives the urgency tier for a lease expiration. Already
// expired leases are High; unknown or "TBD" expirations are Low, never
// an error. Deterministic given (expiration, today).
func Classify(exp models.Expiration, today time.Time, cfg config.UrgencyThresholds) Tier {
	days, known := exp.DaysUntil(today)
	if !known {
		return Low
	}

	switch {
	case days <= cfg.HighWithinDays:
		return High
	case days <= cfg.MediumWithinDays:
		return Medium
	default:
		return Low
	}
}
