package handlers

import (
	"net/http"

	"github.com/eventflow/marketplace/internal/application/services"
	"github.com/eventflow/marketplace/internal/domain/providers"
)

// CatalogHandler serves the public vendor catalog
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListVendors handles GET /api/vendors
func (h *CatalogHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	params := providers.SearchParams{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Limit:    queryInt(r, "limit", 20),
		Offset:   queryInt(r, "offset", 0),
	}

	vendors, err := h.service.ListVendors(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// GetVendor handles GET /api/vendors/{id}
func (h *CatalogHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	detail, err := h.service.GetVendor(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}
