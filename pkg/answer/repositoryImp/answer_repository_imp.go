package repositoryImp

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"scls/entities"
	"scls/pkg/answer/repository"
)

type answerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AnswerRepository { return &answerRepo{db} }

// Save appends; resubmissions are kept as history rather than overwritten.
func (r *answerRepo) Save(a *entities.Answer) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now().UTC()
	}
	return r.db.Create(a).Error
}

func (r *answerRepo) ListByEmail(email, section string) ([]entities.Answer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out []entities.Answer
	if err := r.db.Where("email = ? AND section = ?", email, section).
		Order("submitted_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *answerRepo) ListAll() ([]entities.Answer, error) {
	var out []entities.Answer
	if err := r.db.Order("email, section, submitted_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
