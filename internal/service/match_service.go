package service

import (
	"context"
	"errors"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchService struct {
	matchRepo repository.MatchRepository
}

func NewMatchService(matchRepo repository.MatchRepository) *MatchService {
	return &MatchService{matchRepo: matchRepo}
}

func (s *MatchService) GetByID(ctx context.Context, matchID uuid.UUID) (*domain.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// Counterpart is the authorization check for everything scoped to a match.
// It returns the other participant's id when callerID belongs to the match,
// domain.ErrMatchNotFound when the match does not exist, and
// domain.ErrNotParticipant when callerID is neither participant. The two
// failure modes stay distinct here; how they surface over HTTP is decided at
// the boundary.
func (s *MatchService) Counterpart(ctx context.Context, matchID, callerID uuid.UUID) (uuid.UUID, error) {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return uuid.Nil, err
	}

	other, ok := match.Counterpart(callerID)
	if !ok {
		return uuid.Nil, domain.ErrNotParticipant
	}
	return other, nil
}

// ListForUser returns the caller's matches, newest first, with both
// participant users preloaded.
func (s *MatchService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	return s.matchRepo.GetByUserID(ctx, userID)
}
