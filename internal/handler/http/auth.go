package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/internal/service"
	"github.com/agrolab/backoffice/internal/utils"
	"github.com/agrolab/backoffice/models"
)

// credentialsRequest is the body of the login and register endpoints.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// emailVerificationRequest is the body of the verify-email endpoint.
type emailVerificationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// passwordResetRequest is the body of the reset-password endpoint.
type passwordResetRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.UserService.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Str("username", creds.Username).Msg("login rejected")
			http.Error(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("username", resp.Username).Msg("user successfully logged in")

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.Register(ctx, creds.Username, creds.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordPolicyViolation):
			log.Err(err).Msg("password policy violation")
			http.Error(w, service.ErrPasswordPolicyViolation.Error(), http.StatusUnprocessableEntity)
			return
		case errors.Is(err, service.ErrUsernameTaken):
			log.Err(err).Str("username", creds.Username).Msg("username already taken")
			http.Error(w, service.ErrUsernameTaken.Error(), http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Str("username", creds.Username).Msg("user registered")

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req emailVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	valid, err := h.services.UserService.VerifyEmail(ctx, req.Username, req.Email)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("username", req.Username).Msg("email verification failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, models.EmailVerificationResponse{Valid: valid}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req passwordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.UserService.ResetPassword(ctx, req.Username, req.Email, req.NewPassword)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("username", req.Username).Msg("password reset failed")
		http.Error(w, err.Error(), status)
		return
	}

	log.Info().Str("username", req.Username).Msg("password reset")

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.services.UserService.Logout(ctx, username)

	log.Info().Str("username", username).Msg("user logged out")

	w.WriteHeader(http.StatusOK)
}
