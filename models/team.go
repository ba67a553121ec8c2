package models

// Team groups users by email. Membership is stored by value, not by foreign key.
type Team struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"size:100;not null" json:"name"`
	Members JSONText `gorm:"type:text;not null;default:'[]'" json:"members"`
}

func (Team) TableName() string { return "teams" }

func (t Team) String() string { return t.Name }
