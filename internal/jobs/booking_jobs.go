package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homestay-backend/internal/events"
	"homestay-backend/internal/logger"
)

// ReportStalePendingBookings logs PENDING bookings older than the configured
// age. There is deliberately no automatic expiry: a stale request keeps its
// slot until the host decides or a party cancels, so this job only surfaces
// the backlog for operators.
func (jr *JobRunner) ReportStalePendingBookings() {
	jr.runWithRecovery("ReportStalePendingBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Scheduler.StalePendingAgeHours) * time.Hour)

		query := `
			SELECT id, property_id, host_id, created_at
			FROM bookings
			WHERE status = 'PENDING'
			  AND created_at < $1
			ORDER BY created_at
		`
		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to query stale pending bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, propertyID, hostID int64
			var createdAt time.Time
			if err := rows.Scan(&id, &propertyID, &hostID, &createdAt); err != nil {
				logger.Error("Failed to scan stale pending booking", "error", err)
				continue
			}
			count++
			logger.Warn("Stale pending booking holding its slot",
				"booking_id", id,
				"property_id", propertyID,
				"host_id", hostID,
				"age", time.Since(createdAt).Round(time.Hour).String())
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating stale pending bookings", "error", err)
			return
		}

		logger.Info("Stale pending booking report finished", "count", count, "older_than", fmt.Sprintf("%dh", jr.config.Scheduler.StalePendingAgeHours))
	})
}

// SendCheckInReminders emits reminder events for approved bookings starting
// within the next 24 hours. Delivery is handled by external consumers.
func (jr *JobRunner) SendCheckInReminders() {
	jr.runWithRecovery("SendCheckInReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		query := `
			SELECT id, renter_id, host_id, start_at
			FROM bookings
			WHERE status = 'APPROVED'
			  AND start_at >= $1
			  AND start_at < $2
			ORDER BY start_at
		`
		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to query upcoming check-ins", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, renterID, hostID int64
			var startAt time.Time
			if err := rows.Scan(&id, &renterID, &hostID, &startAt); err != nil {
				logger.Error("Failed to scan upcoming check-in", "error", err)
				continue
			}

			reminder := events.CheckInReminder{
				EventID:   uuid.NewString(),
				BookingID: id,
				RenterID:  renterID,
				HostID:    hostID,
				StartAt:   startAt,
			}
			if err := jr.publisher.Publish(ctx, events.QueueCheckInReminder, reminder); err != nil {
				logger.Error("Failed to publish check-in reminder", "booking_id", id, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming check-ins", "error", err)
			return
		}

		logger.Info("Sent check-in reminders", "count", count)
	})
}
