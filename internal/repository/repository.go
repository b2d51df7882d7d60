package repository

import (
	"context"
	"errors"

	"homestay-backend/internal/domain"
)

// ErrNotFound is returned by repositories when no row matches. Services map
// it onto the application error taxonomy.
var ErrNotFound = errors.New("record not found")

// PropertyRepository is the read-side seam to the external listing service.
// The engine never creates or mutates properties.
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// GetByIDForUpdate locks the booking row for the remainder of the
	// surrounding transaction. Must be called inside WithTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// ListActiveByProperty returns all bookings occupying the property's
	// slot, i.e. status in PENDING, APPROVED, CHECKED_IN.
	ListActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByHost(ctx context.Context, hostID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)

	// WithPropertyLock runs fn inside a transaction that holds an exclusive
	// lock keyed by propertyID. All availability-check-then-insert sequences
	// for a property serialize through this lock, which is what makes the
	// no-overlap invariant race-free.
	WithPropertyLock(ctx context.Context, propertyID int64, fn func(ctx context.Context) error) error
	// WithTx runs fn inside a plain transaction. Used together with
	// GetByIDForUpdate for single-booking mutations, which cannot create new
	// overlaps and so never need the property-wide lock.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
