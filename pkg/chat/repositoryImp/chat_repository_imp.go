package repositoryImp

import (
	"strings"

	"gorm.io/gorm"

	"scls/entities"
	"scls/pkg/chat/repository"
)

type chatRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ChatRepository { return &chatRepo{db} }

func (r *chatRepo) Save(chat *entities.Chat) error {
	chat.Email = strings.ToLower(strings.TrimSpace(chat.Email))
	return r.db.Create(chat).Error
}

func (r *chatRepo) ListByEmail(email, section string) ([]entities.Chat, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out []entities.Chat
	if err := r.db.Where("email = ? AND section = ?", email, section).
		Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
