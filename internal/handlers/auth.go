package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vidinsight/backend/internal/auth"
	"github.com/vidinsight/backend/internal/logging"
	"github.com/vidinsight/backend/internal/models"
)

// AuthHandler implements the mock authentication endpoints.
type AuthHandler struct {
	Sessions SessionStore
	Limiter  RateLimiter
}

// Login handles POST /api/v1/auth/login requests.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil {
		logger.Error("session store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}
	if !allowRequest(h.Limiter, r, "login") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Warn("login rejected", "error", err)
			respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.Error("login failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondJSON(ctx, w, http.StatusOK, userResponse{User: user})
}

// Register handles POST /api/v1/auth/register requests.
func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil {
		logger.Error("session store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}
	if !allowRequest(h.Limiter, r, "register") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many registration attempts")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid register payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Sessions.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(ctx, w, http.StatusBadRequest, registrationMessage(err))
			return
		}
		logger.Error("register failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, userResponse{User: user})
}

// Logout handles POST /api/v1/auth/logout requests.
func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if h.Sessions == nil {
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}

	if err := h.Sessions.Logout(ctx); err != nil {
		logging.FromContext(ctx).Error("logout failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me requests.
func (h AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	user, ok := currentUser(h.Sessions)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "not signed in")
		return
	}
	respondJSON(ctx, w, http.StatusOK, userResponse{User: user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	User models.User `json:"user"`
}

func currentUser(sessions SessionStore) (models.User, bool) {
	if sessions == nil {
		return models.User{}, false
	}
	return sessions.Current()
}

func registrationMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		return "invalid email address"
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "password must be at least 6 characters"
	case errors.Is(err, auth.ErrNameTooShort):
		return "name must be at least 2 characters"
	default:
		return "invalid registration details"
	}
}
