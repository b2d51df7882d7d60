package utils

import (
	"math"

	"homestay-backend/internal/domain"
)

// BillableDays converts an interval into whole billable days. Stays of up to
// 24 hours bill as a single day; anything longer rounds up to the next whole
// day so partial extra hours are never under-charged.
func BillableDays(interval domain.Interval) int64 {
	hours := interval.DurationHours()
	if hours <= 24 {
		return 1
	}
	return int64(math.Ceil(hours / 24))
}

// TotalPriceCents computes the flat per-day price for an interval at the
// given daily rate. The result is snapshotted onto the booking at creation
// and never recomputed.
func TotalPriceCents(interval domain.Interval, dailyRateCents int64) int64 {
	return BillableDays(interval) * dailyRateCents
}
