package models

import "fmt"

// Leaderboard is one scoring event. A user may appear any number of times.
type Leaderboard struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	User  string `gorm:"size:100;not null;index" json:"user"` // user email
	Score int    `gorm:"not null;index" json:"score"`
}

func (Leaderboard) TableName() string { return "leaderboard" }

func (l Leaderboard) String() string { return fmt.Sprintf("%s: %d", l.User, l.Score) }
