package repository

import (
	"context"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Search(ctx context.Context, keyword string) ([]*domain.User, error)
	ListWithLocation(ctx context.Context, excludeID uuid.UUID) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type SwipeRepository interface {
	Upsert(ctx context.Context, swipe *domain.Swipe) error
	Get(ctx context.Context, actorID, targetID uuid.UUID) (*domain.Swipe, error)
	ListByActor(ctx context.Context, actorID uuid.UUID) ([]*domain.Swipe, error)
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetByPair(ctx context.Context, userAID, userBID uuid.UUID) (*domain.Match, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// ListByMatch returns messages ordered by creation time ascending.
	// limit <= 0 means no limit; offset is ignored when limit <= 0.
	ListByMatch(ctx context.Context, matchID uuid.UUID, limit, offset int) ([]*domain.Message, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Swipe   SwipeRepository
	Match   MatchRepository
	Message MessageRepository
}
