// Package repo implements the data persistence layer for domain records over
// the collection store. Each function loads or replaces one whole named
// collection, JSON-encoded; there is no per-record access. Collections that
// were never written decode to their empty value (no users, no bookings, no
// session), which is what a fresh installation looks like.
//
// Error semantics:
//   - Absence is never an error: loads return empty slices/maps or nil.
//   - Any store read/write or decode failure is reported as (wrapped)
//     ErrStorageUnavailable; callers treat it as a 503-class condition.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tbourn/go-lpg-backend/internal/domain"
	"github.com/tbourn/go-lpg-backend/internal/kv"
)

// Collection names as persisted in the store.
const (
	ColUsers       = "users"
	ColCurrentUser = "current_user"
	ColPasswords   = "passwords"
	ColBookings    = "bookings"
	ColIdempotency = "idempotency"
)

// ErrStorageUnavailable is returned when the underlying store cannot be read
// or written, or when a stored document fails to decode.
var ErrStorageUnavailable = errors.New("storage unavailable")

// storageErr wraps a backend failure so callers can match with errors.Is.
func storageErr(op, name string, err error) error {
	return fmt.Errorf("%s %s: %w: %v", op, name, ErrStorageUnavailable, err)
}

// load decodes the named collection into out and reports whether it existed.
func load(ctx context.Context, s kv.Store, name string, out any) (bool, error) {
	data, ok, err := s.Get(ctx, name)
	if err != nil {
		return false, storageErr("load", name, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, storageErr("decode", name, err)
	}
	return true, nil
}

// save encodes v and replaces the named collection.
func save(ctx context.Context, s kv.Store, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return storageErr("encode", name, err)
	}
	if err := s.Put(ctx, name, data); err != nil {
		return storageErr("save", name, err)
	}
	return nil
}

// LoadUsers returns all registered users in insertion order.
func LoadUsers(ctx context.Context, s kv.Store) ([]domain.User, error) {
	users := []domain.User{}
	if _, err := load(ctx, s, ColUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUsers replaces the users collection.
func SaveUsers(ctx context.Context, s kv.Store, users []domain.User) error {
	return save(ctx, s, ColUsers, users)
}

// LoadPasswords returns the email -> password credential map. Absent entries
// mean the email was never registered.
func LoadPasswords(ctx context.Context, s kv.Store) (map[string]string, error) {
	passwords := map[string]string{}
	if _, err := load(ctx, s, ColPasswords, &passwords); err != nil {
		return nil, err
	}
	return passwords, nil
}

// SavePasswords replaces the credential map.
func SavePasswords(ctx context.Context, s kv.Store, passwords map[string]string) error {
	return save(ctx, s, ColPasswords, passwords)
}

// LoadCurrentUser returns the session snapshot, or nil when nobody is logged in.
func LoadCurrentUser(ctx context.Context, s kv.Store) (*domain.User, error) {
	var u domain.User
	ok, err := load(ctx, s, ColCurrentUser, &u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// SaveCurrentUser stores a full copy of u as the session. Passing nil clears
// the session (the collection is removed, not set to null).
func SaveCurrentUser(ctx context.Context, s kv.Store, u *domain.User) error {
	if u == nil {
		if err := s.Delete(ctx, ColCurrentUser); err != nil {
			return storageErr("delete", ColCurrentUser, err)
		}
		return nil
	}
	return save(ctx, s, ColCurrentUser, u)
}

// LoadBookings returns all bookings in insertion order.
func LoadBookings(ctx context.Context, s kv.Store) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	if _, err := load(ctx, s, ColBookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SaveBookings replaces the bookings collection.
func SaveBookings(ctx context.Context, s kv.Store, bookings []domain.Booking) error {
	return save(ctx, s, ColBookings, bookings)
}
