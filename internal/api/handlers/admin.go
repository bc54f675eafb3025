package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	profileService *service.ProfileService
}

func NewAdminHandler(profileService *service.ProfileService) *AdminHandler {
	return &AdminHandler{profileService: profileService}
}

// requireAdmin loads the caller and checks the admin role. Returns false
// after writing the error response when the caller is not an admin.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return false
	}

	caller, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return false
	}
	if caller.Role != domain.RoleAdmin {
		respondError(w, http.StatusForbidden, "Admin access required.")
		return false
	}
	return true
}

func (h *AdminHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	keyword := r.URL.Query().Get("keyword")
	users, err := h.profileService.SearchUsers(r.Context(), keyword)
	if err != nil {
		log.Printf("ERROR [admin.SearchUsers] %v", err)
		respondError(w, http.StatusInternalServerError, "Error searching users.")
		return
	}

	views := make([]ProfileView, 0, len(users))
	for _, u := range users {
		views = append(views, profileView(u))
	}

	respond(w, http.StatusOK, "Users retrieved successfully.", views)
}

func (h *AdminHandler) LockOrUnlockUser(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	locked, err := h.profileService.LockOrUnlockUser(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("ERROR [admin.LockOrUnlockUser] %v", err)
		respondError(w, http.StatusInternalServerError, "Error updating user.")
		return
	}

	message := "User unlocked."
	if locked {
		message = "User locked."
	}
	respond(w, http.StatusOK, message, map[string]bool{"locked": locked})
}
