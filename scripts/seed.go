package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventflow/marketplace/internal/adapters/database"
	"github.com/eventflow/marketplace/internal/adapters/search"
	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/postgres"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/typesense"
	"github.com/eventflow/marketplace/pkg/config"
)

// Seeds a small demo marketplace: one admin, two organizers, two
// vendors with services, a handful of events and bookings covering
// every lifecycle status, and a review on the completed booking.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchAdapter *search.TypesenseAdapter
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		searchAdapter = search.NewTypesenseAdapter(tsClient)
		if err := searchAdapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: failed to init search schema: %v", err)
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	vendorRepo := database.NewVendorAdapter(pgClient)
	serviceRepo := database.NewServiceAdapter(pgClient)
	eventRepo := database.NewEventAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	paymentRepo := database.NewPaymentAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reviews,
				payments,
				bookings,
				services,
				vendor_profiles,
				events,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	now := time.Now()

	newUser := func(email, name string, role entities.Role) *entities.User {
		user := &entities.User{
			ID:        uuid.New().String(),
			Email:     email,
			Name:      name,
			Role:      role,
			CreatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", email, err)
		}
		return user
	}

	admin := newUser("admin@eventflow.dev", "Ada Admin", entities.RoleAdmin)
	organizer1 := newUser("maya@events.dev", "Maya Organizer", entities.RoleOrganizer)
	organizer2 := newUser("liam@events.dev", "Liam Organizer", entities.RoleOrganizer)
	vendorUser1 := newUser("catering@tasty.dev", "Tasty Catering", entities.RoleVendor)
	vendorUser2 := newUser("sound@loud.dev", "Loud Sound", entities.RoleVendor)
	_ = admin

	vendor1 := &entities.VendorProfile{
		ID:           uuid.New().String(),
		UserID:       vendorUser1.ID,
		BusinessName: "Tasty Catering Co",
		Description:  "Full service catering for weddings and corporate events",
		Category:     "catering",
		Location:     "Lagos",
		Rating:       4.6,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	vendor2 := &entities.VendorProfile{
		ID:           uuid.New().String(),
		UserID:       vendorUser2.ID,
		BusinessName: "Loud Sound Productions",
		Description:  "Stage, sound and lighting rentals",
		Category:     "audio",
		Location:     "Abuja",
		Rating:       4.2,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, profile := range []*entities.VendorProfile{vendor1, vendor2} {
		if err := vendorRepo.Create(ctx, profile); err != nil {
			log.Fatalf("Failed to create vendor profile: %v", err)
		}
		if searchAdapter != nil {
			if err := searchAdapter.Index(ctx, profile); err != nil {
				log.Printf("Warning: failed to index vendor %s: %v", profile.BusinessName, err)
			}
		}
	}

	newService := func(vendorID, name, description string, price int64) *entities.Service {
		service := &entities.Service{
			ID:          uuid.New().String(),
			VendorID:    vendorID,
			Name:        name,
			Description: description,
			BasePrice:   decimal.NewFromInt(price),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := serviceRepo.Create(ctx, service); err != nil {
			log.Fatalf("Failed to create service %s: %v", name, err)
		}
		return service
	}

	buffet := newService(vendor1.ID, "Buffet for 100", "Three course buffet, staff included", 2500)
	canapes := newService(vendor1.ID, "Canape reception", "Passed canapes for up to 80 guests", 1200)
	fullStage := newService(vendor2.ID, "Full stage package", "PA, lighting rig and engineer for one day", 3400)

	newEvent := func(organizerID, title, eventType string, daysAhead int, budget int64) *entities.Event {
		event := &entities.Event{
			ID:          uuid.New().String(),
			OrganizerID: organizerID,
			Title:       title,
			Date:        now.AddDate(0, 0, daysAhead),
			Location:    "Lagos",
			Type:        eventType,
			Budget:      decimal.NewFromInt(budget),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := eventRepo.Create(ctx, event); err != nil {
			log.Fatalf("Failed to create event %s: %v", title, err)
		}
		return event
	}

	wedding := newEvent(organizer1.ID, "Ngozi & Tunde wedding", "wedding", 45, 12000)
	launch := newEvent(organizer1.ID, "Q4 product launch", "corporate", 20, 8000)
	gala := newEvent(organizer2.ID, "Charity gala night", "gala", -30, 15000)

	newBooking := func(event *entities.Event, service *entities.Service, vendorID string, status entities.BookingStatus) *entities.Booking {
		booking := &entities.Booking{
			ID:          uuid.New().String(),
			EventID:     event.ID,
			VendorID:    vendorID,
			ServiceID:   service.ID,
			OrganizerID: event.OrganizerID,
			Status:      status,
			Price:       service.BasePrice,
			Date:        event.Date,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := bookingRepo.Create(ctx, booking); err != nil {
			log.Fatalf("Failed to create booking: %v", err)
		}
		return booking
	}

	newBooking(wedding, buffet, vendor1.ID, entities.BookingStatusPending)
	newBooking(wedding, fullStage, vendor2.ID, entities.BookingStatusAccepted)
	newBooking(launch, canapes, vendor1.ID, entities.BookingStatusRejected)

	paid := newBooking(launch, fullStage, vendor2.ID, entities.BookingStatusPaid)
	if err := paymentRepo.Create(ctx, &entities.Payment{
		ID:            uuid.New().String(),
		BookingID:     paid.ID,
		Amount:        paid.Price,
		Status:        entities.PaymentStatusCompleted,
		Method:        "card_stub",
		TransactionID: "stub_seed_1",
		CreatedAt:     now,
	}); err != nil {
		log.Fatalf("Failed to create payment: %v", err)
	}

	// A finished gala booking carrying both its payment and a review.
	completed := newBooking(gala, buffet, vendor1.ID, entities.BookingStatusCompleted)
	if err := paymentRepo.Create(ctx, &entities.Payment{
		ID:            uuid.New().String(),
		BookingID:     completed.ID,
		Amount:        completed.Price,
		Status:        entities.PaymentStatusCompleted,
		Method:        "card_stub",
		TransactionID: "stub_seed_2",
		CreatedAt:     now,
	}); err != nil {
		log.Fatalf("Failed to create payment: %v", err)
	}
	if err := reviewRepo.Create(ctx, &entities.Review{
		ID:        uuid.New().String(),
		BookingID: completed.ID,
		VendorID:  vendor1.ID,
		AuthorID:  organizer2.ID,
		Rating:    5,
		Comment:   "Guests are still talking about the food",
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("Failed to create review: %v", err)
	}

	log.Println("Seed complete: 5 users, 2 vendors, 3 services, 3 events, 5 bookings, 2 payments, 1 review")
}
