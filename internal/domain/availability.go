package domain

// Availability is the outcome of an availability probe for a property and a
// candidate interval. When the slot is taken, the id of the first conflicting
// active booking is reported for diagnostics.
type Availability struct {
	Available            bool   `json:"available"`
	ConflictingBookingID *int64 `json:"conflicting_booking_id,omitempty"`
}
