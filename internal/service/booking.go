package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homestay-backend/internal/apperr"
	"homestay-backend/internal/domain"
	"homestay-backend/internal/events"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/utils"
)

const (
	// minLeadTime is how far in the future a booking must start.
	minLeadTime = 2 * time.Hour
	// minStayDuration is the shortest bookable interval.
	minStayDuration = 2 * time.Hour

	defaultPageSize = 20
	maxPageSize     = 100
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	publisher    events.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	publisher events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		publisher:    publisher,
	}
}

// CreateBooking validates the request, then runs the availability check and
// the PENDING insert as one critical section under the per-property lock, so
// no concurrent create on the same property can slip in between check and
// insert. The property's daily rate is snapshotted onto the booking; later
// rate changes never reprice existing bookings.
func (s *bookingService) CreateBooking(ctx context.Context, renterID, propertyID int64, interval domain.Interval, guestCount int32, message string) (*domain.Booking, error) {
	now := time.Now().UTC()
	interval = domain.NewInterval(interval.StartAt, interval.EndAt)

	if !interval.Valid() {
		return nil, apperr.Validation("interval start must be before interval end")
	}
	if interval.StartAt.Before(now.Add(minLeadTime)) {
		return nil, apperr.Validation("booking must start at least 2 hours in the future")
	}
	if interval.DurationHours() < minStayDuration.Hours() {
		return nil, apperr.Validation("booking must last at least 2 hours")
	}
	if guestCount < domain.MinGuestCount || guestCount > domain.MaxGuestCount {
		return nil, apperr.Validation(fmt.Sprintf("guest count must be between %d and %d", domain.MinGuestCount, domain.MaxGuestCount))
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("property", propertyID)
		}
		return nil, apperr.Internal("failed to load property", err)
	}
	if property.OwnerID == renterID {
		return nil, apperr.Validation("a host cannot book their own property")
	}
	if !property.Bookable() {
		return nil, apperr.Validation("property is not accepting bookings")
	}

	booking := &domain.Booking{
		PropertyID:      propertyID,
		RenterID:        renterID,
		HostID:          property.OwnerID,
		Interval:        interval,
		GuestCount:      guestCount,
		DailyRateCents:  property.DailyRateCents,
		TotalPriceCents: utils.TotalPriceCents(interval, property.DailyRateCents),
		Status:          domain.BookingStatusPending,
		Message:         message,
	}

	err = s.bookingRepo.WithPropertyLock(ctx, propertyID, func(ctx context.Context) error {
		active, err := s.bookingRepo.ListActiveByProperty(ctx, propertyID)
		if err != nil {
			return apperr.Internal("failed to load active bookings", err)
		}
		for i := range active {
			if active[i].Overlaps(interval) {
				return apperr.SlotUnavailable(active[i].ID)
			}
		}
		if err := s.bookingRepo.Create(ctx, booking); err != nil {
			return apperr.Internal("failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.QueueBookingCreated, events.BookingCreated{
		EventID:         uuid.NewString(),
		BookingID:       booking.ID,
		PropertyID:      booking.PropertyID,
		RenterID:        booking.RenterID,
		HostID:          booking.HostID,
		StartAt:         booking.StartAt,
		EndAt:           booking.EndAt,
		GuestCount:      booking.GuestCount,
		TotalPriceCents: booking.TotalPriceCents,
		Message:         booking.Message,
		CreatedAt:       booking.CreatedAt,
	})

	logger.Info("Booking created",
		"booking_id", booking.ID,
		"property_id", booking.PropertyID,
		"renter_id", booking.RenterID,
		"total_price_cents", booking.TotalPriceCents)
	return booking, nil
}

func (s *bookingService) DecideBooking(ctx context.Context, hostID, bookingID int64, decision Decision, reason string) (*domain.Booking, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, apperr.Validation("decision must be APPROVE or REJECT")
	}

	booking, err := s.mutateBooking(ctx, bookingID, func(b *domain.Booking) error {
		if b.HostID != hostID {
			return apperr.NotAuthorized("only the host can decide a booking request")
		}
		next := domain.BookingStatusApproved
		if decision == DecisionReject {
			next = domain.BookingStatusRejected
			b.RejectReason = reason
		}
		return b.TransitionTo(next, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.QueueBookingDecided, events.BookingDecided{
		EventID:   uuid.NewString(),
		BookingID: booking.ID,
		HostID:    booking.HostID,
		RenterID:  booking.RenterID,
		Approved:  decision == DecisionApprove,
		Reason:    reason,
		DecidedAt: *booking.DecidedAt,
	})

	logger.Info("Booking decided", "booking_id", booking.ID, "status", booking.Status)
	return booking, nil
}

// CancelBooking releases the slot: the booking leaves the active set, so the
// next availability check for the same interval sees it as free.
func (s *bookingService) CancelBooking(ctx context.Context, actorID, bookingID int64, reason string) (*domain.Booking, error) {
	booking, err := s.mutateBooking(ctx, bookingID, func(b *domain.Booking) error {
		if !b.IsParty(actorID) {
			return apperr.NotAuthorized("only the renter or the host can cancel a booking")
		}
		if err := b.Cancelable(time.Now().UTC()); err != nil {
			return err
		}
		b.CancelReason = reason
		return b.TransitionTo(domain.BookingStatusCanceled, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.QueueBookingCanceled, events.BookingCanceled{
		EventID:    uuid.NewString(),
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		ActorID:    actorID,
		Reason:     reason,
		CanceledAt: *booking.CanceledAt,
	})

	logger.Info("Booking canceled", "booking_id", booking.ID, "actor_id", actorID)
	return booking, nil
}

// CheckIn has no time-window restriction beyond the state check: a host may
// check a renter in early or late at their discretion.
func (s *bookingService) CheckIn(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.mutateBooking(ctx, bookingID, func(b *domain.Booking) error {
		if b.HostID != hostID {
			return apperr.NotAuthorized("only the host can check a booking in")
		}
		return b.TransitionTo(domain.BookingStatusCheckedIn, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.QueueCheckedIn, events.CheckedIn{
		EventID:     uuid.NewString(),
		BookingID:   booking.ID,
		PropertyID:  booking.PropertyID,
		CheckedInAt: *booking.CheckedInAt,
	})
	return booking, nil
}

func (s *bookingService) CheckOut(ctx context.Context, hostID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.mutateBooking(ctx, bookingID, func(b *domain.Booking) error {
		if b.HostID != hostID {
			return apperr.NotAuthorized("only the host can check a booking out")
		}
		return b.TransitionTo(domain.BookingStatusCheckedOut, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.QueueCheckedOut, events.CheckedOut{
		EventID:      uuid.NewString(),
		BookingID:    booking.ID,
		PropertyID:   booking.PropertyID,
		CheckedOutAt: *booking.CheckedOutAt,
	})
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("booking", bookingID)
		}
		return nil, apperr.Internal("failed to load booking", err)
	}
	if !booking.IsParty(actorID) {
		return nil, apperr.NotAuthorized("booking belongs to another renter and host")
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID int64, role ListRole, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if status != "" {
		if _, ok := domain.ParseBookingStatus(status); !ok {
			return nil, 0, apperr.Validation(fmt.Sprintf("unknown booking status %q", status))
		}
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	var (
		bookings []domain.Booking
		total    int32
		err      error
	)
	switch role {
	case ListRoleHost:
		bookings, total, err = s.bookingRepo.ListByHost(ctx, userID, status, page, pageSize)
	case ListRoleRenter, "":
		bookings, total, err = s.bookingRepo.ListByRenter(ctx, userID, status, page, pageSize)
	default:
		return nil, 0, apperr.Validation("role must be renter or host")
	}
	if err != nil {
		return nil, 0, apperr.Internal("failed to list bookings", err)
	}
	return bookings, total, nil
}

// mutateBooking loads the booking under a row lock, applies fn and persists
// the result in one transaction. Single-booking mutations cannot create new
// overlaps, so the property-wide lock is not needed here.
func (s *bookingService) mutateBooking(ctx context.Context, bookingID int64, fn func(b *domain.Booking) error) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.bookingRepo.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("booking", bookingID)
			}
			return apperr.Internal("failed to load booking", err)
		}
		if err := fn(b); err != nil {
			return err
		}
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			return apperr.Internal("failed to update booking", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// emit publishes a domain event. Publishing failures are logged and dropped;
// the booking mutation has already committed and must not be rolled back.
func (s *bookingService) emit(ctx context.Context, queue string, event any) {
	if err := s.publisher.Publish(ctx, queue, event); err != nil {
		logger.Warn("Failed to publish domain event", "queue", queue, "error", err)
	}
}
