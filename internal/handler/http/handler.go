package http

import (
	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/internal/service"
)

// Handler carries the service layer and the root logger for the HTTP
// transport. All route handlers and middleware hang off it.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
