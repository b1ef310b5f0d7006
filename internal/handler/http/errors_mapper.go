package http

import (
	"errors"
	"net/http"

	"github.com/agrolab/backoffice/internal/service"
	"github.com/agrolab/backoffice/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrEmailMismatch:           http.StatusUnauthorized,
	service.ErrUsernameTaken:           http.StatusConflict,
	service.ErrEmailTaken:              http.StatusConflict,
	service.ErrPasswordPolicyViolation: http.StatusUnprocessableEntity,
	service.ErrUserNotFound:            http.StatusNotFound,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrEmailAlreadyExists:    http.StatusConflict,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
