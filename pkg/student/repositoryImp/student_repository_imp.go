package repositoryImp

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scls/entities"
	"scls/pkg/student/repository"
)

type studentRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StudentRepository { return &studentRepo{db} }

// Upsert keeps re-registration idempotent: the email is the key, name and
// roll number take the latest value.
func (r *studentRepo) Upsert(s *entities.Student) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "roll_number"}),
	}).Create(s).Error
}

func (r *studentRepo) FindByEmail(email string) (*entities.Student, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var s entities.Student
	if err := r.db.Where("email = ?", email).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) All() ([]entities.Student, error) {
	var out []entities.Student
	if err := r.db.Order("email").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
