package profile

import (
	"context"
	"errors"

	"github.com/smith3v/fitness-ai/pkg/logger"
	"gorm.io/gorm"
)

type ReferenceData map[ReferenceTable][]string

func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Genders:       {"male", "female", "other"},
		DietTypes:     {"vegetarian", "vegan", "keto", "none"},
		FitnessLevels: {"beginner", "intermediate", "advanced"},
		Goals:         {"Lose weight", "Gain muscle", "Improve endurance", "Tone muscles"},
	}
}

// Seed inserts the labels that are missing and reports how many rows each
// table gained. Running it again with the same data inserts nothing.
func Seed(ctx context.Context, gdb *gorm.DB, data ReferenceData) (map[ReferenceTable]int, error) {
	for table := range data {
		if !table.Valid() {
			return nil, invalid("table", "unknown reference table %q", table)
		}
	}

	inserted := make(map[ReferenceTable]int, len(data))
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range ReferenceTables() {
			labels, err := distinctLabels(string(table), data[table])
			if err != nil {
				return err
			}
			for _, label := range labels {
				_, created, err := resolveLabel(tx, table, label)
				if err != nil {
					return err
				}
				if created {
					inserted[table]++
				}
			}
		}
		return nil
	})
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		logger.Error("failed to seed reference tables", "error", err)
		return nil, storageErr("seed", "", "", err)
	}

	for _, table := range ReferenceTables() {
		logger.Info("reference table seeded", "table", table, "inserted", inserted[table])
	}
	return inserted, nil
}
