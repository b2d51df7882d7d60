package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/service"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, renterID, propertyID int64, interval domain.Interval, guestCount int32, message string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, propertyID, interval, guestCount, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) DecideBooking(ctx context.Context, hostID, bookingID int64, decision service.Decision, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, hostID, bookingID, decision, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, actorID, bookingID int64, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CheckIn(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, hostID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CheckOut(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, hostID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, userID int64, role service.ListRole, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, userID, role, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, propertyID int64, interval domain.Interval) (*domain.Availability, error) {
	args := m.Called(ctx, propertyID, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}
