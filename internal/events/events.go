// Package events defines the discrete domain events the booking engine emits.
// Consumers (notification, chat, analytics collaborators) subscribe to these
// instead of polling and diffing booking state.
package events

import "time"

// Queue names, one durable queue per event kind.
const (
	QueueBookingCreated  = "booking.created"
	QueueBookingDecided  = "booking.decided"
	QueueBookingCanceled = "booking.canceled"
	QueueCheckedIn       = "booking.checked_in"
	QueueCheckedOut      = "booking.checked_out"
	QueueCheckInReminder = "booking.checkin_reminder"
)

type BookingCreated struct {
	EventID         string    `json:"event_id"`
	BookingID       int64     `json:"booking_id"`
	PropertyID      int64     `json:"property_id"`
	RenterID        int64     `json:"renter_id"`
	HostID          int64     `json:"host_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	GuestCount      int32     `json:"guest_count"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Message         string    `json:"message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingDecided struct {
	EventID   string    `json:"event_id"`
	BookingID int64     `json:"booking_id"`
	HostID    int64     `json:"host_id"`
	RenterID  int64     `json:"renter_id"`
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

type BookingCanceled struct {
	EventID    string    `json:"event_id"`
	BookingID  int64     `json:"booking_id"`
	PropertyID int64     `json:"property_id"`
	ActorID    int64     `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	CanceledAt time.Time `json:"canceled_at"`
}

type CheckedIn struct {
	EventID     string    `json:"event_id"`
	BookingID   int64     `json:"booking_id"`
	PropertyID  int64     `json:"property_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

type CheckedOut struct {
	EventID      string    `json:"event_id"`
	BookingID    int64     `json:"booking_id"`
	PropertyID   int64     `json:"property_id"`
	CheckedOutAt time.Time `json:"checked_out_at"`
}

// CheckInReminder is emitted by the nightly job for approved bookings whose
// stay begins within the next day. Delivery is a consumer concern.
type CheckInReminder struct {
	EventID   string    `json:"event_id"`
	BookingID int64     `json:"booking_id"`
	RenterID  int64     `json:"renter_id"`
	HostID    int64     `json:"host_id"`
	StartAt   time.Time `json:"start_at"`
}
