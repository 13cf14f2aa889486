package repositoryImp

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"scls/entities"
	"scls/pkg/grade/repository"
)

type gradeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GradeRepository { return &gradeRepo{db} }

// Save appends; regrading leaves the old row in place and Latest picks the
// newest one.
func (r *gradeRepo) Save(g *entities.Grade) error {
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	if g.GradedAt.IsZero() {
		g.GradedAt = time.Now().UTC()
	}
	return r.db.Create(g).Error
}

func (r *gradeRepo) ListByEmail(email, section string) ([]entities.Grade, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out []entities.Grade
	if err := r.db.Where("email = ? AND section = ?", email, section).
		Order("graded_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gradeRepo) Latest(email string, questionIdx int, section string) (*entities.Grade, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var g entities.Grade
	err := r.db.Where("email = ? AND question_idx = ? AND section = ?", email, questionIdx, section).
		Order("graded_at DESC").First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
