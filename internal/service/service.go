package service

import (
	"context"

	"homestay-backend/internal/domain"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// ListRole selects which side of a booking the caller is listing.
type ListRole string

const (
	ListRoleRenter ListRole = "renter"
	ListRoleHost   ListRole = "host"
)

// BookingService orchestrates the booking lifecycle. The acting user's id is
// always an explicit argument; nothing is read from ambient state.
type BookingService interface {
	CreateBooking(ctx context.Context, renterID, propertyID int64, interval domain.Interval, guestCount int32, message string) (*domain.Booking, error)
	DecideBooking(ctx context.Context, hostID, bookingID int64, decision Decision, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actorID, bookingID int64, reason string) (*domain.Booking, error)
	CheckIn(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error)
	CheckOut(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, actorID, bookingID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int64, role ListRole, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

// AvailabilityService answers read-only availability probes. Probing does
// not reserve anything; only CreateBooking does, under the property lock.
type AvailabilityService interface {
	CheckAvailability(ctx context.Context, propertyID int64, interval domain.Interval) (*domain.Availability, error)
}
