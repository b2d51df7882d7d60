package domain

type PropertyStatus string

const (
	PropertyStatusListed   PropertyStatus = "LISTED"
	PropertyStatusUnlisted PropertyStatus = "UNLISTED"
	PropertyStatusBlocked  PropertyStatus = "BLOCKED"
)

// Property is the read-side view of a listing owned by the external listing
// service. The engine only needs the owner, the current daily rate and
// whether the property accepts bookings.
type Property struct {
	ID             int64          `json:"id"`
	OwnerID        int64          `json:"owner_id"`
	DailyRateCents int64          `json:"daily_rate_cents"`
	Status         PropertyStatus `json:"status"`
}

// Bookable reports whether the property currently accepts new bookings.
func (p *Property) Bookable() bool {
	return p.Status == PropertyStatusListed
}
