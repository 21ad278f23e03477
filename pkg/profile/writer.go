package profile

import (
	"context"
	"math"
	"strings"

	"github.com/smith3v/fitness-ai/pkg/db"
	"github.com/smith3v/fitness-ai/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Profile is a registration request. Labels are stored exactly as given.
type Profile struct {
	Age          int
	Height       float64
	Weight       float64
	TargetWeight float64
	Gender       string
	DietType     string
	FitnessLevel string
}

func (p Profile) Validate() error {
	if p.Age <= 0 {
		return invalid("age", "must be a positive integer, got %d", p.Age)
	}
	measures := []struct {
		field string
		value float64
	}{
		{"height", p.Height},
		{"weight", p.Weight},
		{"target_weight", p.TargetWeight},
	}
	for _, m := range measures {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) || m.value <= 0 {
			return invalid(m.field, "must be a positive number, got %v", m.value)
		}
	}
	labels := []struct {
		field string
		value string
	}{
		{"gender", p.Gender},
		{"diet_type", p.DietType},
		{"fitness_level", p.FitnessLevel},
	}
	for _, l := range labels {
		if strings.TrimSpace(l.value) == "" {
			return invalid(l.field, "is required")
		}
	}
	return nil
}

// Writer persists users together with their reference labels and goals.
type Writer struct {
	db *gorm.DB
}

func NewWriter(gdb *gorm.DB) *Writer {
	return &Writer{db: gdb}
}

// InsertUser validates p, then resolves every label, inserts the user and links
// its distinct goals in a single transaction. Nothing is committed on failure.
func (w *Writer) InsertUser(ctx context.Context, p Profile, goals []string) (uint, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	goalLabels, err := distinctLabels("goals", goals)
	if err != nil {
		return 0, err
	}

	var user db.User
	var goalIDs []uint
	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs := []struct {
			table ReferenceTable
			label string
			dst   *uint
		}{
			{Genders, p.Gender, &user.GenderID},
			{DietTypes, p.DietType, &user.DietTypeID},
			{FitnessLevels, p.FitnessLevel, &user.FitnessLevelID},
		}
		for _, ref := range refs {
			id, _, err := resolveLabel(tx, ref.table, ref.label)
			if err != nil {
				return err
			}
			*ref.dst = id
		}

		ids, err := resolveLabels(tx, Goals, goalLabels)
		if err != nil {
			return err
		}
		goalIDs = ids

		user.Age = p.Age
		user.Height = p.Height
		user.Weight = p.Weight
		user.TargetWeight = p.TargetWeight
		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return storageErr("insert", "users", "", err)
		}

		if len(goalIDs) == 0 {
			return nil
		}
		links := make([]db.UserGoal, 0, len(goalIDs))
		for _, goalID := range goalIDs {
			links = append(links, db.UserGoal{UserID: user.UserID, GoalID: goalID})
		}
		err = tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "goal_id"}},
				DoNothing: true,
			}).
			Create(&links).Error
		if err != nil {
			return storageErr("insert", "user_goals", "", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to insert user", "error", err)
		return 0, storageErr("insert user", "", "", err)
	}

	logger.Info("user inserted", "user_id", user.UserID, "goals", len(goalIDs))
	return user.UserID, nil
}
