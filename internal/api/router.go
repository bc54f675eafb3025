package api

import (
	"net/http"

	"github.com/flintdate/flint-backend/internal/api/handlers"
	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/config"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/flintdate/flint-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	discoveryHandler := handlers.NewDiscoveryHandler(services.Discovery, hub, cfg)
	matchHandler := handlers.NewMatchHandler(services.Match)
	messageHandler := handlers.NewMessageHandler(services.Message, hub)
	adminHandler := handlers.NewAdminHandler(services.Profile)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/change-password", authHandler.ChangePassword)
			r.Post("/forgot-password", authHandler.ForgotPassword)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Profile routes
			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.UpdateProfile)
				r.Post("/photos", profileHandler.SetPhotos)
			})

			// Discovery routes
			r.Route("/discovery", func(r chi.Router) {
				r.Post("/swipe", discoveryHandler.Swipe)
				r.Get("/nearby", discoveryHandler.Nearby)
			})

			// Match routes
			r.Get("/matches", matchHandler.List)

			// Message routes
			r.Route("/messages", func(r chi.Router) {
				r.Post("/send", messageHandler.Send)
				r.Get("/match/{matchId}", messageHandler.ListByMatch)
			})

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Get("/users", adminHandler.SearchUsers)
				r.Post("/users/{id}/lock", adminHandler.LockOrUnlockUser)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
