package entities

import "time"

type Answer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"index" json:"email"`
	QuestionIdx int       `json:"question_idx"`
	Text        string    `gorm:"column:answer" json:"answer"`
	Section     string    `gorm:"index" json:"section"`
	SubmittedAt time.Time `json:"submitted_at"`
}
