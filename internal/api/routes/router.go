package routes

import (
	"net/http"

	"github.com/eventflow/marketplace/internal/api/handlers"
	"github.com/eventflow/marketplace/internal/api/middleware"
	"github.com/eventflow/marketplace/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler *handlers.BookingHandler
	eventHandler   *handlers.EventHandler
	vendorHandler  *handlers.VendorHandler
	catalogHandler *handlers.CatalogHandler
	adminHandler   *handlers.AdminHandler

	jwtSecret string
	metrics   *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	eventHandler *handlers.EventHandler,
	vendorHandler *handlers.VendorHandler,
	catalogHandler *handlers.CatalogHandler,
	adminHandler *handlers.AdminHandler,
	jwtSecret string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		bookingHandler: bookingHandler,
		eventHandler:   eventHandler,
		vendorHandler:  vendorHandler,
		catalogHandler: catalogHandler,
		adminHandler:   adminHandler,

		jwtSecret: jwtSecret,
		metrics:   metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	auth := middleware.AuthMiddleware(r.jwtSecret)
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public catalog endpoints
	r.mux.HandleFunc("GET /api/vendors", r.catalogHandler.ListVendors)
	r.mux.HandleFunc("GET /api/vendors/{id}", r.catalogHandler.GetVendor)

	// Booking lifecycle endpoints
	r.mux.Handle("POST /api/bookings", protected(r.bookingHandler.CreateBooking))
	r.mux.Handle("GET /api/bookings", protected(r.bookingHandler.ListBookings))
	r.mux.Handle("GET /api/bookings/{id}", protected(r.bookingHandler.GetBooking))
	r.mux.Handle("PUT /api/bookings/{id}", protected(r.bookingHandler.UpdateBooking))
	r.mux.Handle("POST /api/bookings/{id}/review", protected(r.bookingHandler.CreateReview))

	// Organizer endpoints
	r.mux.Handle("GET /api/organizer/events", protected(r.eventHandler.ListEvents))
	r.mux.Handle("POST /api/organizer/events", protected(r.eventHandler.CreateEvent))
	r.mux.Handle("PUT /api/organizer/events/{id}", protected(r.eventHandler.UpdateEvent))
	r.mux.Handle("DELETE /api/organizer/events/{id}", protected(r.eventHandler.DeleteEvent))

	// Vendor endpoints
	r.mux.Handle("GET /api/vendor/profile", protected(r.vendorHandler.GetProfile))
	r.mux.Handle("PUT /api/vendor/profile", protected(r.vendorHandler.UpdateProfile))
	r.mux.Handle("GET /api/vendor/services", protected(r.vendorHandler.ListServices))
	r.mux.Handle("POST /api/vendor/services", protected(r.vendorHandler.CreateService))
	r.mux.Handle("PUT /api/vendor/services/{id}", protected(r.vendorHandler.UpdateService))
	r.mux.Handle("DELETE /api/vendor/services/{id}", protected(r.vendorHandler.DeleteService))

	// Admin endpoints
	r.mux.Handle("GET /api/admin/stats", protected(r.adminHandler.GetStats))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
