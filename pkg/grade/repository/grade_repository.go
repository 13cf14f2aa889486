package repository

import "scls/entities"

type GradeRepository interface {
	Save(g *entities.Grade) error
	ListByEmail(email, section string) ([]entities.Grade, error)
	// Latest returns the newest grade for one question, or nil when the
	// question has not been graded yet.
	Latest(email string, questionIdx int, section string) (*entities.Grade, error)
}
