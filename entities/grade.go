package entities

import "time"

type Grade struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"index" json:"email"`
	QuestionIdx int       `json:"question_idx"`
	Grade       string    `json:"grade"`
	Section     string    `gorm:"index" json:"section"`
	GradedAt    time.Time `json:"graded_at"`
}
