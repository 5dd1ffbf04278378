package domain

import "time"

// IdempotencyRecord remembers the outcome of a previously processed booking
// creation, keyed by (user_id, key). It lets POST /bookings retries return the
// originally created booking instead of producing a duplicate. Records live in
// their own collection and expire after a configured TTL.
type IdempotencyRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Key       string    `json:"key"`
	BookingID string    `json:"booking_id"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
