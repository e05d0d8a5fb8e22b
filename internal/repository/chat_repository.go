package repository

import (
	"micro_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(message *model.ChatMessage) error {
	return r.DB.Create(message).Error
}

func (r *ChatRepository) FindBySkill(userID, skillID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("user_id = ? AND skill_id = ?", userID, skillID).
		Order("created_at").
		Find(&messages).Error
	return messages, err
}
