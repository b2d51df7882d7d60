package service

import (
	"context"
	"errors"

	"homestay-backend/internal/apperr"
	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

type availabilityService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
}

func NewAvailabilityService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository) AvailabilityService {
	return &availabilityService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

// CheckAvailability scans the property's active bookings for an overlap with
// the candidate interval. Linear in active bookings per property. On its own
// this check is advisory; CreateBooking repeats it under the property lock.
func (s *availabilityService) CheckAvailability(ctx context.Context, propertyID int64, interval domain.Interval) (*domain.Availability, error) {
	if !interval.Valid() {
		return nil, apperr.Validation("interval start must be before interval end")
	}
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("property", propertyID)
		}
		return nil, apperr.Internal("failed to load property", err)
	}

	active, err := s.bookingRepo.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		return nil, apperr.Internal("failed to load active bookings", err)
	}
	for i := range active {
		if active[i].Overlaps(interval) {
			id := active[i].ID
			return &domain.Availability{Available: false, ConflictingBookingID: &id}, nil
		}
	}
	return &domain.Availability{Available: true}, nil
}
