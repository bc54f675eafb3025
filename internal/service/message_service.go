package service

import (
	"context"
	"strings"
	"time"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository"
	"github.com/google/uuid"
)

type MessageService struct {
	messageRepo  repository.MessageRepository
	matchService *MatchService
}

func NewMessageService(messageRepo repository.MessageRepository, matchService *MatchService) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		matchService: matchService,
	}
}

// Send stores one message from callerID on the given match. The receiver is
// always the match counterpart resolved by the authorization check — never
// anything a client supplied — so a caller cannot address a message to an
// arbitrary user. The insert is the only write and the last fallible step;
// nothing is retried.
func (s *MessageService) Send(ctx context.Context, matchID, callerID uuid.UUID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	receiverID, err := s.matchService.Counterpart(ctx, matchID, callerID)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		MatchID:    matchID,
		SenderID:   callerID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// List returns the full thread of a match in send order. The same
// authorization check as Send runs first; there is no path to messages that
// skips it.
func (s *MessageService) List(ctx context.Context, matchID, callerID uuid.UUID) ([]*domain.Message, error) {
	if _, err := s.matchService.Counterpart(ctx, matchID, callerID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByMatch(ctx, matchID, 0, 0)
}

// ListPage is the paginated variant of List for clients that window long
// threads. Ordering and authorization are identical.
func (s *MessageService) ListPage(ctx context.Context, matchID, callerID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	if _, err := s.matchService.Counterpart(ctx, matchID, callerID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByMatch(ctx, matchID, limit, offset)
}
