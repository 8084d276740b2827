package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"leasehawk/server/internal/models"
)

// ToBound converts delineated-area limits to an orb bound.
func ToBound(b models.AreaBounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// Contains reports whether the coordinate falls inside the delineated area.
func Contains(b models.AreaBounds, lat, lon float64) bool {
	return ToBound(b).Contains(orb.Point{lon, lat})
}

// DistanceKm returns the great-circle distance between two coordinates.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(orb.Point{lon1, lat1}, orb.Point{lon2, lat2}) / 1000
}

// PropertyCollection builds the GeoJSON feature collection the map
// dashboard renders. Properties without coordinates are skipped;
// bestScores carries the best match total per property id (absent keys
// render as score 0).
func PropertyCollection(properties []models.Property, bestScores map[int64]float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}

		feature := geojson.NewFeature(orb.Point{*p.Longitude, *p.Latitude})
		feature.Properties = geojson.Properties{
			"id":               p.ID,
			"address":          p.Address,
			"city":             p.City,
			"state":            p.State,
			"best_match_score": bestScores[p.ID],
		}
		if p.AvailableSqft != nil {
			feature.Properties["available_sqft"] = *p.AvailableSqft
		}
		if p.AskingRentPerSqft != nil {
			feature.Properties["asking_rent_per_sqft"] = *p.AskingRentPerSqft
		}

		fc.Append(feature)
	}

	return fc
}
