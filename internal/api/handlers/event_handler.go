package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eventflow/marketplace/internal/api/middleware"
	"github.com/eventflow/marketplace/internal/application/services"
)

// EventHandler handles organizer event requests
type EventHandler struct {
	service *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// ListEvents handles GET /api/organizer/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	events, err := h.service.ListEvents(r.Context(), actor)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// CreateEvent handles POST /api/organizer/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), actor, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /api/organizer/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var input services.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), actor, id, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/organizer/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	if err := h.service.DeleteEvent(r.Context(), actor, id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
