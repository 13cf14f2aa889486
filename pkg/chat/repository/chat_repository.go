package repository

import "scls/entities"

type ChatRepository interface {
	Save(chat *entities.Chat) error
	// ListByEmail returns one student's exchanges for a section in
	// chronological order.
	ListByEmail(email, section string) ([]entities.Chat, error)
}
