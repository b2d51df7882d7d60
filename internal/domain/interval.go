package domain

import "time"

// Interval is a half-open time window [StartAt, EndAt) in UTC. The end
// instant is excluded so back-to-back bookings on the same property do not
// conflict.
type Interval struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

func NewInterval(startAt, endAt time.Time) Interval {
	return Interval{StartAt: startAt.UTC(), EndAt: endAt.UTC()}
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.StartAt.Before(i.EndAt)
}

// Overlaps reports whether two half-open intervals share any instant.
// An interval ending exactly when another starts does not overlap it.
func (i Interval) Overlaps(other Interval) bool {
	return i.StartAt.Before(other.EndAt) && other.StartAt.Before(i.EndAt)
}

// DurationHours returns the interval length in hours.
func (i Interval) DurationHours() float64 {
	return i.EndAt.Sub(i.StartAt).Hours()
}
