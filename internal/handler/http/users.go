package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/internal/service"
	"github.com/agrolab/backoffice/internal/utils"
	"github.com/agrolab/backoffice/models"
	"github.com/go-chi/chi/v5"
)

// usernameAvailability is the payload of the username check endpoint.
type usernameAvailability struct {
	Exists bool `json:"exists"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.UserService.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("error occurred during listing users")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.UserService.CreateUser(ctx, user)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("username", user.Username).Msg("user creation failed")
		http.Error(w, err.Error(), status)
		return
	}

	log.Info().Int64("id", created.ID).Str("username", created.Username).Msg("user created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid user id in path")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, found, err := h.services.UserService.GetUserByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("error occurred during user lookup")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, service.ErrUserNotFound.Error(), http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid user id in path")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the path is authoritative for the target account
	user.ID = id

	updated, err := h.services.UserService.UpdateUser(ctx, user)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Int64("id", id).Msg("user update failed")
		http.Error(w, err.Error(), status)
		return
	}

	log.Info().Int64("id", updated.ID).Msg("user updated")

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := userIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid user id in path")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, service.ErrUserNotFound.Error(), http.StatusNotFound)
			return
		default:
			log.Err(err).Int64("id", id).Msg("user deletion failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Int64("id", id).Msg("user deleted")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")

	_, err := h.services.UserService.FindByUsername(ctx, username)
	switch {
	case err == nil:
		utils.WriteJSON(w, usernameAvailability{Exists: true}, http.StatusOK)
	case errors.Is(err, service.ErrUserNotFound):
		utils.WriteJSON(w, usernameAvailability{Exists: false}, http.StatusOK)
	default:
		log.Err(err).Str("username", username).Msg("error occurred during username check")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// userIDFromURL extracts the {id} chi route parameter as an int64.
func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
