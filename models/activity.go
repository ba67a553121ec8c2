package models

import (
	"fmt"
	"time"
)

// Activity is a single logged exercise session.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	User         string    `gorm:"size:100;not null;index" json:"user"` // user email
	ActivityType string    `gorm:"size:100;not null" json:"activity_type"`
	Duration     float64   `gorm:"not null" json:"duration"` // minutes
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
}

func (Activity) TableName() string { return "activities" }

func (a Activity) String() string { return fmt.Sprintf("%s - %s", a.User, a.ActivityType) }
