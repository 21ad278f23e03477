package profile

import (
	"context"
	"errors"

	"github.com/smith3v/fitness-ai/pkg/db"
	"gorm.io/gorm"
)

type Progress struct {
	UserID        uint    `json:"user_id"`
	CurrentWeight float64 `json:"current_weight"`
	TargetWeight  float64 `json:"target_weight"`
	KgToLose      float64 `json:"kg_to_lose"`
}

// UserRecord is a user with its reference ids resolved back to labels.
type UserRecord struct {
	UserID       uint     `json:"user_id"`
	Age          int      `json:"age"`
	Height       float64  `json:"height"`
	Weight       float64  `json:"weight"`
	TargetWeight float64  `json:"target_weight"`
	Gender       string   `json:"gender"`
	DietType     string   `json:"diet_type"`
	FitnessLevel string   `json:"fitness_level"`
	Goals        []string `json:"goals"`
}

type Reader struct {
	db *gorm.DB
}

func NewReader(gdb *gorm.DB) *Reader {
	return &Reader{db: gdb}
}

// GetUserProgress returns nil without an error when the user does not exist.
func (r *Reader) GetUserProgress(ctx context.Context, userID uint) (*Progress, error) {
	var rows []Progress
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Select("user_id, weight AS current_weight, target_weight, weight - target_weight AS kg_to_lose").
		Where("user_id = ?", userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("read progress", "users", "", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *Reader) LoadUser(ctx context.Context, userID uint) (*UserRecord, error) {
	tx := r.db.WithContext(ctx)

	var user db.User
	err := tx.Preload("Gender").Preload("DietType").Preload("FitnessLevel").
		Where("user_id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("load", "users", "", err)
	}

	var goals []string
	err = tx.Table("goals").
		Joins("JOIN user_goals ON user_goals.goal_id = goals.id").
		Where("user_goals.user_id = ?", userID).
		Order("goals.id").
		Pluck("goals.label", &goals).Error
	if err != nil {
		return nil, storageErr("load", "user_goals", "", err)
	}

	return &UserRecord{
		UserID:       user.UserID,
		Age:          user.Age,
		Height:       user.Height,
		Weight:       user.Weight,
		TargetWeight: user.TargetWeight,
		Gender:       user.Gender.Label,
		DietType:     user.DietType.Label,
		FitnessLevel: user.FitnessLevel.Label,
		Goals:        goals,
	}, nil
}
