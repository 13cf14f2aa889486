package entities

import "time"

type Chat struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"index" json:"email"`
	Question    string    `json:"question"`
	BotResponse string    `json:"bot_response"`
	Section     string    `gorm:"index" json:"section"`
	CreatedAt   time.Time `json:"created_at"`
}
