package service

import (
	"github.com/flintdate/flint-backend/internal/config"
	"github.com/flintdate/flint-backend/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Profile   *ProfileService
	Discovery *DiscoveryService
	Match     *MatchService
	Message   *MessageService
}

func NewServices(repos *repository.Repositories, mailer Mailer, cfg *config.Config) *Services {
	matchService := NewMatchService(repos.Match)
	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, mailer, cfg),
		Profile:   NewProfileService(repos.User),
		Discovery: NewDiscoveryService(repos.User, repos.Swipe, repos.Match),
		Match:     matchService,
		Message:   NewMessageService(repos.Message, matchService),
	}
}
