package postgres

import (
	"context"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByPair(ctx context.Context, userAID, userBID uuid.UUID) (*domain.Match, error) {
	a, b := domain.NormalizePair(userAID, userBID)
	var match domain.Match
	err := r.db.WithContext(ctx).
		First(&match, "user_a_id = ? AND user_b_id = ?", a, b).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	var matches []*domain.Match
	err := r.db.WithContext(ctx).
		Preload("UserA").
		Preload("UserB").
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
