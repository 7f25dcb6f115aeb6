package handlers

import (
	"errors"
	"net/http"

	"pickem-app-go/interfaces"
	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
	"pickem-app-go/services"
)

// AuthHandler handles login
type AuthHandler struct {
	authService interfaces.AuthService
	validator   *requestValidator
	logger      *logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService interfaces.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   newRequestValidator(),
		logger:      logging.WithPrefix("AuthHandler"),
	}
}

// Login handles POST /api/login and returns a JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.validator.decode(w, r, &req) {
		return
	}

	authResponse, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Infof("Login failed for %s", req.Email)
		}
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Infof("User %s logged in via API", authResponse.User.Email)
	writeJSON(w, http.StatusOK, authResponse)
}

// Me returns the authenticated member
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user.ToSafeUser())
}
