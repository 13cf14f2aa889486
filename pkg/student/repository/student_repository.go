package repository

import "scls/entities"

type StudentRepository interface {
	Upsert(s *entities.Student) error
	FindByEmail(email string) (*entities.Student, error)
	All() ([]entities.Student, error)
}
