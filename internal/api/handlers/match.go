package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// MatchView presents a match from the caller's perspective: the counterpart
// is resolved server-side.
type MatchView struct {
	ID          string    `json:"id"`
	Counterpart *UserView `json:"counterpart,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	matches, err := h.matchService.ListForUser(r.Context(), callerID)
	if err != nil {
		log.Printf("ERROR [match.List] %v", err)
		respondError(w, http.StatusInternalServerError, "Error retrieving matches.")
		return
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		view := MatchView{
			ID:        m.ID.String(),
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
		if counterpart := counterpartUser(m, callerID); counterpart != nil {
			v := userView(counterpart)
			view.Counterpart = &v
		}
		views = append(views, view)
	}

	respond(w, http.StatusOK, "Matches retrieved successfully.", views)
}

func counterpartUser(m *domain.Match, callerID uuid.UUID) *domain.User {
	if m.UserA != nil && m.UserA.ID != callerID {
		return m.UserA
	}
	if m.UserB != nil && m.UserB.ID != callerID {
		return m.UserB
	}
	return nil
}
