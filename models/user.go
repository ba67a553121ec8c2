package models

// User is a tracker participant. Email is the natural key other records point at.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Age   int    `gorm:"not null" json:"age"`
}

func (User) TableName() string { return "users" }

func (u User) String() string { return u.Name }
