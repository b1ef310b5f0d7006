package service

import (
	"github.com/agrolab/backoffice/internal/config"
	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/internal/store"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	UserService  UserService
	StatsService StatsService
}

// NewServices wires up all services over the given storages. The stats
// tracker is created once here and shared for the process lifetime.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	stats := NewStatsService(logger)

	return &Services{
		UserService:  NewUserService(storages.UserRepository, stats, cfg, logger),
		StatsService: stats,
	}
}
