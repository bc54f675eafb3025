package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Bio       *string  `json:"bio"`
	Gender    *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Age       *int     `json:"age" validate:"omitempty,gte=18,lte=120"`
	JobTitle  *string  `json:"jobTitle"`
	School    *string  `json:"school"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type SetPhotosRequest struct {
	URLs []string `json:"urls" validate:"required,dive,url"`
}

// ProfileView is the full profile including fields not exposed on the compact
// UserView.
type ProfileView struct {
	UserView
	Bio       string   `json:"bio"`
	Gender    string   `json:"gender"`
	Age       int      `json:"age"`
	JobTitle  string   `json:"jobTitle"`
	School    string   `json:"school"`
	Photos    []string `json:"photos"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func profileView(u *domain.User) ProfileView {
	var photos []string
	if len(u.Photos) > 0 {
		if err := json.Unmarshal(u.Photos, &photos); err != nil {
			log.Printf("ERROR [profile.profileView] corrupt photos column for user %s: %v", u.ID, err)
		}
	}
	if photos == nil {
		photos = []string{}
	}
	return ProfileView{
		UserView:  userView(u),
		Bio:       u.Bio,
		Gender:    string(u.Gender),
		Age:       u.Age,
		JobTitle:  u.JobTitle,
		School:    u.School,
		Photos:    photos,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("ERROR [profile.GetProfile] %v", err)
		respondError(w, http.StatusInternalServerError, "Error retrieving profile.")
		return
	}

	respond(w, http.StatusOK, "Profile retrieved successfully.", profileView(user))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.UpdateProfileInput{
		Name:      req.Name,
		Bio:       req.Bio,
		Age:       req.Age,
		JobTitle:  req.JobTitle,
		School:    req.School,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		input.Gender = &gender
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("ERROR [profile.UpdateProfile] %v", err)
		respondError(w, http.StatusInternalServerError, "Error updating profile.")
		return
	}

	respond(w, http.StatusOK, "Profile updated successfully.", profileView(user))
}

func (h *ProfileHandler) SetPhotos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req SetPhotosRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.profileService.SetPhotos(r.Context(), userID, req.URLs)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("ERROR [profile.SetPhotos] %v", err)
		respondError(w, http.StatusInternalServerError, "Error updating photos.")
		return
	}

	respond(w, http.StatusOK, "Photos updated successfully.", profileView(user))
}
