package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smith3v/fitness-ai/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceTable names one of the label dictionaries.
type ReferenceTable string

const (
	Genders       ReferenceTable = "genders"
	DietTypes     ReferenceTable = "diet_types"
	FitnessLevels ReferenceTable = "fitness_levels"
	Goals         ReferenceTable = "goals"
)

func ReferenceTables() []ReferenceTable {
	return []ReferenceTable{Genders, DietTypes, FitnessLevels, Goals}
}

func (t ReferenceTable) Valid() bool {
	switch t {
	case Genders, DietTypes, FitnessLevels, Goals:
		return true
	default:
		return false
	}
}

func ParseReferenceTable(value string) (ReferenceTable, error) {
	table := ReferenceTable(strings.ToLower(strings.TrimSpace(value)))
	if !table.Valid() {
		return "", invalid("table", "unknown reference table %q", value)
	}
	return table, nil
}

type labelRow struct {
	ID        uint
	Label     string
	CreatedAt time.Time
}

// Resolver maps labels to stable identifiers, creating rows on first use.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(gdb *gorm.DB) *Resolver {
	return &Resolver{db: gdb}
}

// Resolve returns the id of label in table. An existing label is returned
// without writing; an unseen one is inserted with a store-generated id.
func (r *Resolver) Resolve(ctx context.Context, table ReferenceTable, label string) (uint, error) {
	if err := checkLabel(table, label); err != nil {
		return 0, err
	}
	id, _, err := resolveLabel(r.db.WithContext(ctx), table, label)
	return id, err
}

// ResolveAll resolves labels in order. Repeated labels collapse to their first
// occurrence, so the result may be shorter than the input.
func (r *Resolver) ResolveAll(ctx context.Context, table ReferenceTable, labels []string) ([]uint, error) {
	if !table.Valid() {
		return nil, invalid("table", "unknown reference table %q", table)
	}
	distinct, err := distinctLabels(string(table), labels)
	if err != nil {
		return nil, err
	}
	var ids []uint
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resolveErr error
		ids, resolveErr = resolveLabels(tx, table, distinct)
		return resolveErr
	})
	if err != nil {
		return nil, storageErr("resolve", string(table), "", err)
	}
	return ids, nil
}

func checkLabel(table ReferenceTable, label string) error {
	if !table.Valid() {
		return invalid("table", "unknown reference table %q", table)
	}
	if label == "" {
		return invalid("label", "empty label for %s", table)
	}
	return nil
}

func distinctLabels(field string, labels []string) ([]string, error) {
	seen := make(map[string]struct{}, len(labels))
	distinct := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			return nil, invalid(field, "empty label")
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		distinct = append(distinct, label)
	}
	return distinct, nil
}

func resolveLabels(tx *gorm.DB, table ReferenceTable, labels []string) ([]uint, error) {
	ids := make([]uint, 0, len(labels))
	for _, label := range labels {
		id, _, err := resolveLabel(tx, table, label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveLabel reports whether the row was created by this call.
func resolveLabel(tx *gorm.DB, table ReferenceTable, label string) (uint, bool, error) {
	id, found, err := lookupLabel(tx, table, label)
	if err != nil {
		return 0, false, storageErr("lookup", string(table), label, err)
	}
	if found {
		return id, false, nil
	}

	row := labelRow{Label: label}
	result := tx.Table(string(table)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "label"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return 0, false, storageErr("insert", string(table), label, result.Error)
	}
	if result.RowsAffected == 1 && row.ID != 0 {
		logger.Debug("reference label created", "table", table, "label", label, "id", row.ID)
		return row.ID, true, nil
	}

	// Another writer inserted the label between our lookup and insert.
	id, found, err = lookupLabel(tx, table, label)
	if err != nil {
		return 0, false, storageErr("lookup", string(table), label, err)
	}
	if !found {
		return 0, false, storageErr("insert", string(table), label, errors.New("label missing after insert"))
	}
	return id, false, nil
}

func lookupLabel(tx *gorm.DB, table ReferenceTable, label string) (uint, bool, error) {
	var row labelRow
	err := tx.Table(string(table)).Select("id").Where("label = ?", label).Take(&row).Error
	if err == nil {
		return row.ID, true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	return 0, false, err
}
