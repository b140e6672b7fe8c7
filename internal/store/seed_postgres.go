package store

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedPostgres inserts the demo dataset, skipping rows that already
// exist. CreatedAt is staggered so listings keep the seed order.
func SeedPostgres(db *gorm.DB) error {
	base := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, r := range SeedResources() {
		row, err := toResourceRow(&r)
		if err != nil {
			return err
		}
		row.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
	}

	for i, a := range SeedAlerts() {
		row := AlertRow{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Severity:    string(a.Severity),
			Category:    string(a.Category),
			ResourceID:  a.ResourceID,
			ActionLink:  a.ActionLink,
			ActionText:  a.ActionText,
			Timestamp:   a.Timestamp,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
