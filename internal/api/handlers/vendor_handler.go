package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eventflow/marketplace/internal/api/middleware"
	"github.com/eventflow/marketplace/internal/application/services"
)

// VendorHandler handles the vendor's own profile and service management
type VendorHandler struct {
	service *services.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(service *services.VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

// GetProfile handles GET /api/vendor/profile
func (h *VendorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.service.GetMyProfile(r.Context(), actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/vendor/profile
func (h *VendorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := h.service.UpsertMyProfile(r.Context(), actor, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// ListServices handles GET /api/vendor/services
func (h *VendorHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	servicesList, err := h.service.ListMyServices(r.Context(), actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": servicesList,
		"count":    len(servicesList),
	})
}

// CreateService handles POST /api/vendor/services
func (h *VendorHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	service, err := h.service.CreateService(r.Context(), actor, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, service)
}

// UpdateService handles PUT /api/vendor/services/{id}
func (h *VendorHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	var input services.ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	service, err := h.service.UpdateService(r.Context(), actor, id, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, service)
}

// DeleteService handles DELETE /api/vendor/services/{id}
func (h *VendorHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "service ID is required")
		return
	}

	if err := h.service.DeleteService(r.Context(), actor, id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
