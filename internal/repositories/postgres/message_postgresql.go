package postgres

import (
	"context"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/models"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
	"gorm.io/gorm"
)

type MessagePostgreSQL struct {
	db *gorm.DB
}

func NewMessagePostgreSQL(db *gorm.DB) repositories.MessageRepository {
	return &MessagePostgreSQL{db: db}
}

func (m MessagePostgreSQL) Create(ctx context.Context, message *models.Message) error {
	return m.db.WithContext(ctx).Create(message).Error
}

func (m MessagePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := m.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (m MessagePostgreSQL) List(ctx context.Context, filters repositories.MessageFilters) ([]*models.Message, int64, error) {
	var messages []*models.Message
	var total int64

	query := m.db.WithContext(ctx).Model(&models.Message{})
	if filters.Priority != nil {
		query = query.Where("priority = ?", *filters.Priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (m MessagePostgreSQL) Delete(ctx context.Context, id uint) error {
	return m.db.WithContext(ctx).Delete(&models.Message{}, id).Error
}
