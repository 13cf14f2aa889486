package repository

import "scls/entities"

type AnswerRepository interface {
	Save(a *entities.Answer) error
	// ListByEmail returns one student's submissions for a section in
	// submission order, oldest first.
	ListByEmail(email, section string) ([]entities.Answer, error)
	// ListAll returns every submission ordered by email, section, and
	// submission time, the order the export walks.
	ListAll() ([]entities.Answer, error)
}
