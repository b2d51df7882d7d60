package domain

import (
	"time"

	"homestay-backend/internal/apperr"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusApproved   BookingStatus = "APPROVED"
	BookingStatusRejected   BookingStatus = "REJECTED"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCanceled   BookingStatus = "CANCELED"
)

// CancellationNotice is how far before the booking start a PENDING or
// APPROVED booking may still be cancelled.
const CancellationNotice = 24 * time.Hour

const (
	MinGuestCount = 1
	MaxGuestCount = 20
)

// transitions is the full edge set of the booking state machine. Terminal
// states (REJECTED, CANCELED, CHECKED_OUT) have no outgoing edges.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected, BookingStatusCanceled},
	BookingStatusApproved: {BookingStatusCheckedIn, BookingStatusCanceled},
	BookingStatusCheckedIn: {BookingStatusCheckedOut},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsActive reports whether a booking in this status occupies its slot.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusCheckedIn:
		return true
	}
	return false
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected,
		BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusCanceled:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking is the core entity of the rental engine. DailyRateCents is a
// snapshot of the property's rate at creation time; TotalPriceCents is
// computed once from it and never recomputed.
type Booking struct {
	ID         int64 `json:"id"`
	PropertyID int64 `json:"property_id"`
	RenterID   int64 `json:"renter_id"`
	HostID     int64 `json:"host_id"`
	Interval
	GuestCount      int32         `json:"guest_count"`
	DailyRateCents  int64         `json:"daily_rate_cents"`
	TotalPriceCents int64         `json:"total_price_cents"`
	Status          BookingStatus `json:"status"`
	Message         string        `json:"message,omitempty"`
	RejectReason    string        `json:"reject_reason,omitempty"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	CheckedInAt     *time.Time    `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time    `json:"checked_out_at,omitempty"`
	CanceledAt      *time.Time    `json:"canceled_at,omitempty"`
}

// TransitionTo moves the booking to next if the edge is legal, stamping the
// lifecycle timestamp for the target state exactly once.
func (b *Booking) TransitionTo(next BookingStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return apperr.InvalidTransition(string(b.Status), string(next))
	}
	now = now.UTC()
	switch next {
	case BookingStatusApproved, BookingStatusRejected:
		b.DecidedAt = &now
	case BookingStatusCheckedIn:
		b.CheckedInAt = &now
	case BookingStatusCheckedOut:
		b.CheckedOutAt = &now
	case BookingStatusCanceled:
		b.CanceledAt = &now
	}
	b.Status = next
	return nil
}

// CancellationDeadline is the last instant at which cancellation is allowed.
func (b *Booking) CancellationDeadline() time.Time {
	return b.StartAt.Add(-CancellationNotice)
}

// Cancelable checks both the state edge and the time-window policy. The
// window is evaluated at the moment of the request, never cached.
func (b *Booking) Cancelable(now time.Time) error {
	if !b.Status.CanTransitionTo(BookingStatusCanceled) {
		return apperr.InvalidTransition(string(b.Status), string(BookingStatusCanceled))
	}
	deadline := b.CancellationDeadline()
	if !now.Before(deadline) {
		return apperr.CancellationWindowClosed(deadline.UTC().Format(time.RFC3339))
	}
	return nil
}

// IsParty reports whether userID is the renter or the host of the booking.
func (b *Booking) IsParty(userID int64) bool {
	return b.RenterID == userID || b.HostID == userID
}
