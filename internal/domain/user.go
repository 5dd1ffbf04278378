// Package domain defines the persisted records for users and bookings and the
// pure derivation helpers (pricing, status labels) shared by the service and
// HTTP layers. Records are value types: they are copied in and out of the
// store on every read and write, so callers never hold references into
// persisted state.
package domain

import "time"

// User is a registered customer profile. Email is the login key and must be
// unique (case-sensitive) across the store. Address doubles as the default
// delivery address for new bookings.
//
// Fields:
//   - ID: stable UUID, generated at registration, immutable.
//   - Email: unique login key.
//   - Name / Phone / Address: mutable profile fields.
//   - CreatedAt: fixed at registration.
//
// The credential (password) is deliberately NOT part of this record; it lives
// in a separate passwords collection keyed by email so that a User can be
// listed or returned to clients without ever carrying the secret along.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
