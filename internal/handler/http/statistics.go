package http

import (
	"net/http"

	"github.com/agrolab/backoffice/internal/utils"
	"github.com/agrolab/backoffice/models"
)

func (h *Handler) visitorStatistics(w http.ResponseWriter, r *http.Request) {
	stats := models.VisitorStatistics{
		TotalVisitors: h.services.StatsService.TotalVisitors(),
		ActiveUsers:   h.services.StatsService.ActiveCount(),
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
