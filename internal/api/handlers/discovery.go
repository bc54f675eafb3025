package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/config"
	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/flintdate/flint-backend/internal/websocket"
	"github.com/google/uuid"
)

type DiscoveryHandler struct {
	discoveryService *service.DiscoveryService
	hub              *websocket.Hub
	cfg              *config.Config
}

func NewDiscoveryHandler(discoveryService *service.DiscoveryService, hub *websocket.Hub, cfg *config.Config) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryService: discoveryService,
		hub:              hub,
		cfg:              cfg,
	}
}

type SwipeRequest struct {
	TargetID string `json:"targetId" validate:"required,uuid"`
	Liked    bool   `json:"liked"`
}

type SwipeView struct {
	Matched bool       `json:"matched"`
	Match   *MatchView `json:"match,omitempty"`
}

type NearbyUserView struct {
	User       UserView `json:"user"`
	DistanceKm float64  `json:"distanceKm"`
}

func (h *DiscoveryHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req SwipeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid target id.")
		return
	}

	result, err := h.discoveryService.Swipe(r.Context(), callerID, targetID, req.Liked)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfSwipe):
			respondError(w, http.StatusBadRequest, "Cannot swipe on yourself.")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusBadRequest, "Target user not found.")
		default:
			log.Printf("ERROR [discovery.Swipe] %v", err)
			respondError(w, http.StatusInternalServerError, "Error recording swipe.")
		}
		return
	}

	view := SwipeView{Matched: result.Matched}
	if result.Matched {
		view.Match = &MatchView{
			ID:        result.Match.ID.String(),
			CreatedAt: result.Match.CreatedAt.Format(time.RFC3339),
		}
		h.notifyMatch(result.Match)
	}

	respond(w, http.StatusOK, "Swipe recorded.", view)
}

func (h *DiscoveryHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	rangeKm := h.cfg.DefaultNearbyRangeKm
	if raw := r.URL.Query().Get("range"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid range.")
			return
		}
		rangeKm = parsed
	}

	nearby, err := h.discoveryService.Nearby(r.Context(), callerID, rangeKm)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLocation):
			respondError(w, http.StatusBadRequest, "Set your location before searching nearby.")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found.")
		default:
			log.Printf("ERROR [discovery.Nearby] %v", err)
			respondError(w, http.StatusInternalServerError, "Error searching nearby users.")
		}
		return
	}

	views := make([]NearbyUserView, 0, len(nearby))
	for _, n := range nearby {
		views = append(views, NearbyUserView{
			User:       userView(n.User),
			DistanceKm: n.DistanceKm,
		})
	}

	respond(w, http.StatusOK, "Nearby users retrieved successfully.", views)
}

// notifyMatch tells both participants about the fresh match.
func (h *DiscoveryHandler) notifyMatch(m *domain.Match) {
	pairs := []struct{ to, counterpart uuid.UUID }{
		{m.UserAID, m.UserBID},
		{m.UserBID, m.UserAID},
	}
	for _, p := range pairs {
		event, err := websocket.NewEvent(websocket.EventTypeMatchNew, websocket.MatchNewPayload{
			MatchID:       m.ID.String(),
			CounterpartID: p.counterpart.String(),
		})
		if err != nil {
			log.Printf("ERROR [discovery.notifyMatch] %v", err)
			return
		}
		h.hub.NotifyUser(p.to, event)
	}
}
