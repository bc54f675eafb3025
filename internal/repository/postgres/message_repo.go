package postgres

import (
	"context"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message
	q := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
