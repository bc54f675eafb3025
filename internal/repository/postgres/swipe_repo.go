package postgres

import (
	"context"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type swipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) *swipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Upsert(ctx context.Context, swipe *domain.Swipe) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
	}).Create(swipe).Error
}

func (r *swipeRepository) Get(ctx context.Context, actorID, targetID uuid.UUID) (*domain.Swipe, error) {
	var swipe domain.Swipe
	err := r.db.WithContext(ctx).
		First(&swipe, "actor_id = ? AND target_id = ?", actorID, targetID).Error
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) ListByActor(ctx context.Context, actorID uuid.UUID) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Find(&swipes).Error
	if err != nil {
		return nil, err
	}
	return swipes, nil
}
