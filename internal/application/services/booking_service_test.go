package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/marketplace/internal/application/services"
	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// Mocks

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetDetail(ctx context.Context, id string) (*entities.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BookingDetail), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.BookingDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BookingDetail), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entities.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

// ... other repository methods mocked as needed ...
func (m *MockEventRepository) Update(ctx context.Context, event *entities.Event) error {
	return nil
}
func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	return nil
}
func (m *MockEventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*entities.Event, error) {
	return nil, nil
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	return nil
}
func (m *MockServiceRepository) Update(ctx context.Context, service *entities.Service) error {
	return nil
}
func (m *MockServiceRepository) Delete(ctx context.Context, id string) error {
	return nil
}
func (m *MockServiceRepository) ListByVendor(ctx context.Context, vendorID string) ([]*entities.Service, error) {
	return nil, nil
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) GetByUserID(ctx context.Context, userID string) (*entities.VendorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VendorProfile), args.Error(1)
}

func (m *MockVendorRepository) Create(ctx context.Context, profile *entities.VendorProfile) error {
	return nil
}
func (m *MockVendorRepository) GetByID(ctx context.Context, id string) (*entities.VendorProfile, error) {
	return nil, nil
}
func (m *MockVendorRepository) Update(ctx context.Context, profile *entities.VendorProfile) error {
	return nil
}
func (m *MockVendorRepository) List(ctx context.Context, filter repositories.VendorFilter) ([]*entities.VendorProfile, error) {
	return nil, nil
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*entities.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

// Fixtures

var (
	organizer = entities.Actor{ID: "org-1", Role: entities.RoleOrganizer}
	vendor    = entities.Actor{ID: "ven-user-1", Role: entities.RoleVendor}
	admin     = entities.Actor{ID: "adm-1", Role: entities.RoleAdmin}
)

func bookingDetail(status entities.BookingStatus) *entities.BookingDetail {
	detail := &entities.BookingDetail{
		Booking: entities.Booking{
			ID:          "b1",
			EventID:     "e1",
			VendorID:    "v1",
			ServiceID:   "s1",
			OrganizerID: "org-1",
			Status:      status,
			Price:       decimal.NewFromInt(2500),
		},
	}
	detail.Event = entities.Event{ID: "e1", OrganizerID: "org-1", Title: "Launch party"}
	detail.Service = entities.Service{ID: "s1", VendorID: "v1", Name: "Catering"}
	detail.Vendor = entities.VendorSummary{ID: "v1", UserID: "ven-user-1", BusinessName: "Tasty Co"}
	return detail
}

func newBookingService(bookingRepo *MockBookingRepository, eventRepo *MockEventRepository, serviceRepo *MockServiceRepository, vendorRepo *MockVendorRepository, paymentRepo *MockPaymentRepository) *services.BookingService {
	return services.NewBookingService(
		bookingRepo,
		eventRepo,
		serviceRepo,
		vendorRepo,
		services.NewPaymentService(paymentRepo),
		nil,
		nil,
	)
}

// Tests

func TestBookingService_CreateBooking(t *testing.T) {
	t.Run("snapshots the service price and defaults the date", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		eventRepo := new(MockEventRepository)
		serviceRepo := new(MockServiceRepository)
		service := newBookingService(bookingRepo, eventRepo, serviceRepo, new(MockVendorRepository), new(MockPaymentRepository))

		eventDate := time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC)
		eventRepo.On("GetByID", mock.Anything, "e1").Return(&entities.Event{
			ID: "e1", OrganizerID: "org-1", Date: eventDate,
		}, nil)
		serviceRepo.On("GetByID", mock.Anything, "s1").Return(&entities.Service{
			ID: "s1", VendorID: "v1", BasePrice: decimal.NewFromInt(2500),
		}, nil)

		bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Booking) bool {
			return b.Status == entities.BookingStatusPending &&
				b.Price.Equal(decimal.NewFromInt(2500)) &&
				b.Date.Equal(eventDate) &&
				b.OrganizerID == "org-1" &&
				b.VendorID == "v1"
		})).Return(nil)
		bookingRepo.On("GetDetail", mock.Anything, mock.Anything).Return(bookingDetail(entities.BookingStatusPending), nil)

		detail, err := service.CreateBooking(context.Background(), organizer, services.CreateBookingInput{
			EventID:   "e1",
			ServiceID: "s1",
		})

		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusPending, detail.Status)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("rejects booking against someone else's event", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		eventRepo := new(MockEventRepository)
		service := newBookingService(bookingRepo, eventRepo, new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		eventRepo.On("GetByID", mock.Anything, "e1").Return(&entities.Event{
			ID: "e1", OrganizerID: "someone-else",
		}, nil)

		_, err := service.CreateBooking(context.Background(), organizer, services.CreateBookingInput{
			EventID:   "e1",
			ServiceID: "s1",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects vendors as booking creators", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		service := newBookingService(new(MockBookingRepository), eventRepo, new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		eventRepo.On("GetByID", mock.Anything, "e1").Return(&entities.Event{
			ID: "e1", OrganizerID: "ven-user-1",
		}, nil)

		_, err := service.CreateBooking(context.Background(), vendor, services.CreateBookingInput{
			EventID:   "e1",
			ServiceID: "s1",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("requires event and service ids", func(t *testing.T) {
		service := newBookingService(new(MockBookingRepository), new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		_, err := service.CreateBooking(context.Background(), organizer, services.CreateBookingInput{})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	t.Run("vendor accepts a pending booking", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil).Once()
		bookingRepo.On("UpdateStatus", mock.Anything, "b1", entities.BookingStatusPending, entities.BookingStatusAccepted).Return(nil)
		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusAccepted), nil)

		detail, err := service.UpdateStatus(context.Background(), vendor, "b1", entities.BookingStatusAccepted)

		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusAccepted, detail.Status)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("organizer paying records the stub payment", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		paymentRepo := new(MockPaymentRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), paymentRepo)

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusAccepted), nil).Once()
		bookingRepo.On("UpdateStatus", mock.Anything, "b1", entities.BookingStatusAccepted, entities.BookingStatusPaid).Return(nil)
		paymentRepo.On("GetByBookingID", mock.Anything, "b1").Return(nil, apperrors.NewNotFoundError("payment for booking b1 not found"))
		paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Payment) bool {
			return p.BookingID == "b1" &&
				p.Amount.Equal(decimal.NewFromInt(2500)) &&
				p.Status == entities.PaymentStatusCompleted &&
				p.Method == "card_stub"
		})).Return(nil)
		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPaid), nil)

		detail, err := service.UpdateStatus(context.Background(), organizer, "b1", entities.BookingStatusPaid)

		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusPaid, detail.Status)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("a replayed payment transition reuses the recorded payment", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		paymentRepo := new(MockPaymentRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), paymentRepo)

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusAccepted), nil).Once()
		bookingRepo.On("UpdateStatus", mock.Anything, "b1", entities.BookingStatusAccepted, entities.BookingStatusPaid).Return(nil)
		paymentRepo.On("GetByBookingID", mock.Anything, "b1").Return(&entities.Payment{
			ID: "p1", BookingID: "b1", Amount: decimal.NewFromInt(2500), Status: entities.PaymentStatusCompleted,
		}, nil)
		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPaid), nil)

		_, err := service.UpdateStatus(context.Background(), organizer, "b1", entities.BookingStatusPaid)

		assert.NoError(t, err)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("losing the payment write race is tolerated", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		paymentRepo := new(MockPaymentRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), paymentRepo)

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusAccepted), nil).Once()
		bookingRepo.On("UpdateStatus", mock.Anything, "b1", entities.BookingStatusAccepted, entities.BookingStatusPaid).Return(nil)
		paymentRepo.On("GetByBookingID", mock.Anything, "b1").Return(nil, apperrors.NewNotFoundError("payment for booking b1 not found"))
		paymentRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.NewConflictError("payment for booking b1 already exists"))
		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPaid), nil)

		_, err := service.UpdateStatus(context.Background(), organizer, "b1", entities.BookingStatusPaid)

		assert.NoError(t, err)
	})

	t.Run("organizer cannot accept their own booking", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil)

		_, err := service.UpdateStatus(context.Background(), organizer, "b1", entities.BookingStatusAccepted)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no transition leaves a terminal status", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusRejected), nil)

		_, err := service.UpdateStatus(context.Background(), admin, "b1", entities.BookingStatusAccepted)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
	})

	t.Run("admin may drive any listed edge", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil).Once()
		bookingRepo.On("UpdateStatus", mock.Anything, "b1", entities.BookingStatusPending, entities.BookingStatusRejected).Return(nil)
		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusRejected), nil)

		_, err := service.UpdateStatus(context.Background(), admin, "b1", entities.BookingStatusRejected)

		assert.NoError(t, err)
	})

	t.Run("strangers get forbidden before any transition check", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil)

		stranger := entities.Actor{ID: "other-vendor", Role: entities.RoleVendor}
		_, err := service.UpdateStatus(context.Background(), stranger, "b1", entities.BookingStatusAccepted)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("a lost race surfaces as conflict", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil)
		bookingRepo.On("UpdateStatus", mock.Anything, "b1", entities.BookingStatusPending, entities.BookingStatusAccepted).
			Return(apperrors.NewConflictError("booking status changed concurrently, now CANCELLED"))

		_, err := service.UpdateStatus(context.Background(), vendor, "b1", entities.BookingStatusAccepted)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("rejects unknown target statuses", func(t *testing.T) {
		service := newBookingService(new(MockBookingRepository), new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		_, err := service.UpdateStatus(context.Background(), vendor, "b1", "SHIPPED")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	t.Run("organizers only see their own bookings", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.BookingFilter) bool {
			return f.OrganizerID == "org-1" && f.VendorID == ""
		})).Return([]*entities.BookingDetail{bookingDetail(entities.BookingStatusPending)}, nil)

		details, err := service.ListBookings(context.Background(), organizer, "", 20, 0)

		require.NoError(t, err)
		assert.Len(t, details, 1)
	})

	t.Run("vendors are scoped through their profile", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vendorRepo := new(MockVendorRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), vendorRepo, new(MockPaymentRepository))

		vendorRepo.On("GetByUserID", mock.Anything, "ven-user-1").Return(&entities.VendorProfile{ID: "v1", UserID: "ven-user-1"}, nil)
		bookingRepo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.BookingFilter) bool {
			return f.VendorID == "v1" && f.OrganizerID == ""
		})).Return([]*entities.BookingDetail{}, nil)

		details, err := service.ListBookings(context.Background(), vendor, "", 20, 0)

		require.NoError(t, err)
		assert.Empty(t, details)
	})

	t.Run("a vendor without a profile has no bookings", func(t *testing.T) {
		vendorRepo := new(MockVendorRepository)
		service := newBookingService(new(MockBookingRepository), new(MockEventRepository), new(MockServiceRepository), vendorRepo, new(MockPaymentRepository))

		vendorRepo.On("GetByUserID", mock.Anything, "ven-user-1").Return(nil, apperrors.NewNotFoundError("vendor profile for user ven-user-1 not found"))

		details, err := service.ListBookings(context.Background(), vendor, "", 20, 0)

		require.NoError(t, err)
		assert.Empty(t, details)
	})
}

func TestBookingService_GetBooking(t *testing.T) {
	t.Run("owning vendor may read", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil)

		detail, err := service.GetBooking(context.Background(), vendor, "b1")

		require.NoError(t, err)
		assert.Equal(t, "b1", detail.ID)
	})

	t.Run("strangers may not read", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		service := newBookingService(bookingRepo, new(MockEventRepository), new(MockServiceRepository), new(MockVendorRepository), new(MockPaymentRepository))

		bookingRepo.On("GetDetail", mock.Anything, "b1").Return(bookingDetail(entities.BookingStatusPending), nil)

		stranger := entities.Actor{ID: "org-2", Role: entities.RoleOrganizer}
		_, err := service.GetBooking(context.Background(), stranger, "b1")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	})
}
