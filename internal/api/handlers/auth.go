package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/flintdate/flint-backend/internal/api/middleware"
	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserView struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	FirstLogin bool   `json:"firstLogin"`
}

// RegisterView carries the created user plus the generated password, which is
// both emailed and returned so the client can show it once.
type RegisterView struct {
	User     UserView `json:"user"`
	Password string   `json:"password"`
}

type LoginView struct {
	User        UserView `json:"user"`
	AccessToken string   `json:"accessToken"`
	// RefreshToken is opaque; only its bcrypt hash is stored server-side.
	RefreshToken string `json:"refreshToken"`
}

func userView(u *domain.User) UserView {
	return UserView{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		FirstLogin: u.FirstLogin,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, rawPassword, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			respondError(w, http.StatusConflict, "Email already registered.")
			return
		}
		log.Printf("ERROR [auth.Register] %v", err)
		respondError(w, http.StatusInternalServerError, "Error registering user.")
		return
	}

	respond(w, http.StatusOK, "User registered successfully!", RegisterView{
		User:     userView(user),
		Password: rawPassword,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChangePasswordRequired):
			// First login with the generated password: no token yet.
			respond(w, http.StatusOK, "Please change your password.", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(w, http.StatusBadRequest, "Invalid email or password.")
		case errors.Is(err, domain.ErrUserLocked):
			respondError(w, http.StatusBadRequest, "Account is locked.")
		default:
			log.Printf("ERROR [auth.Login] %v", err)
			respondError(w, http.StatusInternalServerError, "Error during login.")
		}
		return
	}

	respond(w, http.StatusOK, "Login successful.", LoginView{
		User:         userView(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.authService.ChangePassword(r.Context(), service.ChangePasswordInput{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusBadRequest, "Invalid email or password.")
			return
		}
		log.Printf("ERROR [auth.ChangePassword] %v", err)
		respondError(w, http.StatusInternalServerError, "Error during password change.")
		return
	}

	respond(w, http.StatusOK, "Password changed successfully!", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusBadRequest, "Invalid email.")
			return
		}
		log.Printf("ERROR [auth.ForgotPassword] %v", err)
		respondError(w, http.StatusInternalServerError, "Error resetting password.")
		return
	}

	respond(w, http.StatusOK, "Password reset successfully. Please check your email for the new password.", nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found.")
		return
	}

	respond(w, http.StatusOK, "User retrieved successfully.", userView(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		log.Printf("ERROR [auth.Logout] %v", err)
		respondError(w, http.StatusInternalServerError, "Error during logout.")
		return
	}

	respond(w, http.StatusOK, "Logout successful.", nil)
}
