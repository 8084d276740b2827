package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leasehawk/server/internal/models"
)

// UpsertMatches writes a batch of recomputed matches inside the given
// transaction. The (prospectus_id, property_id) unique index makes the
// write idempotent: recomputing the same pair overwrites the scores,
// last write wins.
func UpsertMatches(tx *gorm.DB, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "prospectus_id"}, {Name: "property_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"location_score",
			"size_score",
			"price_score",
			"parking_score",
			"total_score",
			"notes",
			"updated_at",
		}),
	}).Create(&matches).Error
	if err != nil {
		return fmt.Errorf("failed to upsert matches: %w", err)
	}

	return nil
}
