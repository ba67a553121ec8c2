package models

// Workout is a named routine with a loosely typed list of exercises.
type Workout struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:100;not null" json:"name"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Exercises   JSONText `gorm:"type:text;not null;default:'[]'" json:"exercises"`
}

func (Workout) TableName() string { return "workouts" }

func (w Workout) String() string { return w.Name }
