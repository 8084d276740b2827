package urgency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leasehawk/server/config"
	"leasehawk/server/internal/models"
)

func TestClassify(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := config.DefaultScoringConfig().Urgency

	cases := []struct {
		name     string
		days     int
		expected Tier
	}{
		{"expires in 30 days", 30, High},
		{"already expired", -15, High},
		{"at high boundary", 180, High},
		{"just past high boundary", 181, Medium},
		{"expires in 300 days", 300, Medium},
		{"at medium boundary", 540, Medium},
		{"just past medium boundary", 541, Low},
		{"expires in two years", 730, Low},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exp := models.KnownExpiration(today.AddDate(0, 0, tc.days))
			assert.Equal(t, tc.expected, Classify(exp, today, cfg))
		})
	}
}

func TestClassifyUnknownExpiration(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := config.DefaultScoringConfig().Urgency

	assert.Equal(t, Low, Classify(models.ParseExpiration("TBD"), today, cfg))
	assert.Equal(t, Low, Classify(models.ParseExpiration(""), today, cfg))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "High", High.String())
	assert.Equal(t, "Medium", Medium.String())
	assert.Equal(t, "Low", Low.String())
}
