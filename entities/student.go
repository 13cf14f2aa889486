package entities

import "time"

type Student struct {
	Email      string    `gorm:"primaryKey" json:"email"`
	Name       string    `json:"name"`
	RollNumber string    `json:"roll_number"`
	CreatedAt  time.Time `json:"created_at"`
}
