package db

import (
	"time"

	"gorm.io/datatypes"
)

// Reference tables share one shape: a surrogate id and a unique label.

type Gender struct {
	ID        uint   `gorm:"primaryKey"`
	Label     string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (Gender) TableName() string { return "genders" }

type DietType struct {
	ID        uint   `gorm:"primaryKey"`
	Label     string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (DietType) TableName() string { return "diet_types" }

type FitnessLevel struct {
	ID        uint   `gorm:"primaryKey"`
	Label     string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (FitnessLevel) TableName() string { return "fitness_levels" }

type Goal struct {
	ID        uint   `gorm:"primaryKey"`
	Label     string `gorm:"size:200;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (Goal) TableName() string { return "goals" }

type User struct {
	UserID         uint    `gorm:"primaryKey;column:user_id"`
	Age            int     `gorm:"not null"`
	Height         float64 `gorm:"not null"`
	Weight         float64 `gorm:"not null"`
	TargetWeight   float64 `gorm:"not null"`
	GenderID       uint    `gorm:"not null;index"`
	DietTypeID     uint    `gorm:"not null;index"`
	FitnessLevelID uint    `gorm:"not null;index"`
	CreatedAt      time.Time

	Gender       Gender       `gorm:"foreignKey:GenderID"`
	DietType     DietType     `gorm:"foreignKey:DietTypeID"`
	FitnessLevel FitnessLevel `gorm:"foreignKey:FitnessLevelID"`
	Goals        []UserGoal   `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

// UserGoal links a user to a goal; the composite key makes each pair unique.
// The cascading user constraint is declared on User.Goals.
type UserGoal struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	GoalID uint `gorm:"primaryKey;autoIncrement:false;index"`

	Goal Goal `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}

func (UserGoal) TableName() string { return "user_goals" }

// DatasetImport records one run of the dataset cleaning pipeline.
type DatasetImport struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	RunID     string         `gorm:"size:36;not null;uniqueIndex" json:"run_id"`
	Source    string         `gorm:"not null" json:"source"`
	RowsIn    int            `gorm:"not null;default:0" json:"rows_in"`
	RowsOut   int            `gorm:"not null;default:0" json:"rows_out"`
	Summary   datatypes.JSON `gorm:"not null" json:"summary"`
	CreatedAt time.Time      `json:"created_at"`
}

func (DatasetImport) TableName() string { return "dataset_imports" }

// schemaModels is ordered so that referenced tables are created first.
func schemaModels() []any {
	return []any{
		&Gender{},
		&DietType{},
		&FitnessLevel{},
		&Goal{},
		&User{},
		&UserGoal{},
		&DatasetImport{},
	}
}
