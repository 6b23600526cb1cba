package handlers

import (
	"net/http"

	"github.com/eventflow/marketplace/internal/api/middleware"
	"github.com/eventflow/marketplace/internal/application/services"
)

// AdminHandler serves the admin dashboard endpoints
type AdminHandler struct {
	stats *services.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(stats *services.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.stats.GetStats(r.Context(), actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
