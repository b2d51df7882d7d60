package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay-backend/internal/apperr"
	"homestay-backend/internal/domain"
	"homestay-backend/internal/events"
	"homestay-backend/internal/repository/postgres"
	"homestay-backend/internal/service"
)

func TestBookingFlow(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()

	ctx := context.Background()
	store := postgres.NewStore(db)
	svc := service.NewBookingService(store.BookingRepository, store.PropertyRepository, events.NopPublisher{})

	hostID := int64(10)
	renterID := int64(1)
	competitorID := int64(2)
	propertyID := seedProperty(t, db, hostID, 500_000)

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	interval := domain.NewInterval(start, start.Add(46*time.Hour))

	booking, err := svc.CreateBooking(ctx, renterID, propertyID, interval, 3, "anniversary")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(1_000_000), booking.TotalPriceCents)

	approved, err := svc.DecideBooking(ctx, hostID, booking.ID, service.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, approved.Status)

	// Competitor is blocked while the slot is held.
	_, err = svc.CreateBooking(ctx, competitorID, propertyID, interval, 2, "")
	assert.True(t, apperr.Is(err, apperr.CodeSlotUnavailable))

	canceled, err := svc.CancelBooking(ctx, renterID, booking.ID, "change of plans")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCanceled, canceled.Status)

	// Cancellation releases the slot.
	second, err := svc.CreateBooking(ctx, competitorID, propertyID, interval, 2, "")
	require.NoError(t, err)

	checkedIn, err := svc.DecideBooking(ctx, hostID, second.ID, service.DecisionApprove, "")
	require.NoError(t, err)
	checkedIn, err = svc.CheckIn(ctx, hostID, checkedIn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCheckedIn, checkedIn.Status)

	out, err := svc.CheckOut(ctx, hostID, checkedIn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCheckedOut, out.Status)
	assert.NotNil(t, out.CheckedOutAt)
}

// The advisory lock must serialize concurrent creates on the same property so
// exactly one of two racing requests wins the slot.
func TestBookingFlow_ConcurrentCreates(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()

	ctx := context.Background()
	store := postgres.NewStore(db)
	svc := service.NewBookingService(store.BookingRepository, store.PropertyRepository, events.NopPublisher{})

	propertyID := seedProperty(t, db, 10, 500_000)

	start := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	interval := domain.NewInterval(start, start.Add(24*time.Hour))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(ctx, int64(i+1), propertyID, interval, 2, "")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, apperr.Is(err, apperr.CodeSlotUnavailable), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, successes)

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT count(*) FROM bookings WHERE property_id = $1 AND status = 'PENDING'`, propertyID,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBookingFlow_ListBookings(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()

	ctx := context.Background()
	store := postgres.NewStore(db)
	svc := service.NewBookingService(store.BookingRepository, store.PropertyRepository, events.NopPublisher{})

	hostID := int64(10)
	renterID := int64(1)
	propertyID := seedProperty(t, db, hostID, 300_000)

	base := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * 48 * time.Hour)
		_, err := svc.CreateBooking(ctx, renterID, propertyID,
			domain.NewInterval(start, start.Add(24*time.Hour)), 2, "")
		require.NoError(t, err)
	}

	bookings, total, err := svc.ListBookings(ctx, renterID, service.ListRoleRenter, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), total)
	assert.Len(t, bookings, 2)

	hosted, total, err := svc.ListBookings(ctx, hostID, service.ListRoleHost, "PENDING", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(3), total)
	assert.Len(t, hosted, 3)
}
