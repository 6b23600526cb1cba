package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eventflow/marketplace/internal/api/middleware"
	"github.com/eventflow/marketplace/internal/application/services"
	"github.com/eventflow/marketplace/internal/domain/entities"
)

// BookingLifecycle defines the interface for booking operations
type BookingLifecycle interface {
	CreateBooking(ctx context.Context, actor entities.Actor, input services.CreateBookingInput) (*entities.BookingDetail, error)
	GetBooking(ctx context.Context, actor entities.Actor, id string) (*entities.BookingDetail, error)
	ListBookings(ctx context.Context, actor entities.Actor, status entities.BookingStatus, limit, offset int) ([]*entities.BookingDetail, error)
	UpdateStatus(ctx context.Context, actor entities.Actor, id string, to entities.BookingStatus) (*entities.BookingDetail, error)
}

// ReviewGate defines the interface for review operations
type ReviewGate interface {
	CreateReview(ctx context.Context, actor entities.Actor, bookingID string, input services.CreateReviewInput) (*entities.Review, error)
}

// BookingHandler handles booking lifecycle requests
type BookingHandler struct {
	bookings BookingLifecycle
	reviews  ReviewGate
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings BookingLifecycle, reviews ReviewGate) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		reviews:  reviews,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	detail, err := h.bookings.CreateBooking(r.Context(), actor, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, detail)
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	status := entities.BookingStatus(r.URL.Query().Get("status"))
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	details, err := h.bookings.ListBookings(r.Context(), actor, status, limit, offset)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": details,
		"count":    len(details),
	})
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	detail, err := h.bookings.GetBooking(r.Context(), actor, id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// UpdateBooking handles PUT /api/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var body struct {
		Status entities.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if body.Status == "" {
		respondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	detail, err := h.bookings.UpdateStatus(r.Context(), actor, id, body.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// CreateReview handles POST /api/bookings/{id}/review
func (h *BookingHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var input services.CreateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), actor, id, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val >= 0 {
			return val
		}
	}
	return fallback
}
