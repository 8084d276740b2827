package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasehawk/server/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestContains(t *testing.T) {
	bounds := models.AreaBounds{North: 39.0, South: 38.8, East: -76.9, West: -77.2}

	assert.True(t, Contains(bounds, 38.9072, -77.0369))  // downtown DC
	assert.False(t, Contains(bounds, 39.2904, -76.6122)) // Baltimore
	assert.False(t, Contains(bounds, 38.9, -76.5))       // east of the area
}

func TestDistanceKm(t *testing.T) {
	// DC to Baltimore is roughly 56km
	km := DistanceKm(38.9072, -77.0369, 39.2904, -76.6122)
	assert.InDelta(t, 56, km, 3)

	assert.Equal(t, 0.0, DistanceKm(38.9, -77.0, 38.9, -77.0))
}

func TestPropertyCollection(t *testing.T) {
	properties := []models.Property{
		{ID: 1, Address: "1100 First St NE", City: "Washington", State: "DC", Latitude: floatPtr(38.9), Longitude: floatPtr(-77.0)},
		{ID: 2, Address: "No Coordinates Rd", City: "Denver", State: "CO"},
	}
	scores := map[int64]float64{1: 87.5}

	fc := PropertyCollection(properties, scores)
	require.Len(t, fc.Features, 1)

	feature := fc.Features[0]
	assert.Equal(t, int64(1), feature.Properties["id"])
	assert.Equal(t, 87.5, feature.Properties["best_match_score"])

	point := feature.Point()
	assert.Equal(t, -77.0, point.Lon())
	assert.Equal(t, 38.9, point.Lat())
}
