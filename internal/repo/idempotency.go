// Package repo: idempotency records.
//
// Idempotency records live in their own collection and implement safe-retry
// semantics for booking creation: a replayed (user, key) pair maps back to the
// originally created booking. Expired records are pruned opportunistically on
// every write.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-lpg-backend/internal/domain"
	"github.com/tbourn/go-lpg-backend/internal/kv"
)

// loadIdempotency returns all stored records (possibly expired).
func loadIdempotency(ctx context.Context, s kv.Store) ([]domain.IdempotencyRecord, error) {
	recs := []domain.IdempotencyRecord{}
	if _, err := load(ctx, s, ColIdempotency, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetIdempotency returns the non-expired record for (userID, key), or nil.
func GetIdempotency(ctx context.Context, s kv.Store, userID, key string, now time.Time) (*domain.IdempotencyRecord, error) {
	recs, err := loadIdempotency(ctx, s)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		r := recs[i]
		if r.UserID == userID && r.Key == key && r.ExpiresAt.After(now) {
			return &r, nil
		}
	}
	return nil, nil
}

// KeyExists reports whether any non-expired record carries the given key,
// regardless of user. The HTTP middleware uses it to flag likely replays
// before the request body (and thus the user id) has been read; the
// authoritative, user-scoped replay check stays in the handler.
func KeyExists(ctx context.Context, s kv.Store, key string, now time.Time) (bool, error) {
	recs, err := loadIdempotency(ctx, s)
	if err != nil {
		return false, err
	}
	for _, r := range recs {
		if r.Key == key && r.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

// CreateIdempotency stores a record mapping (userID, key) to bookingID with
// the given TTL, dropping any expired records in the same write.
func CreateIdempotency(ctx context.Context, s kv.Store, userID, key, bookingID string, status int, ttl time.Duration) (*domain.IdempotencyRecord, error) {
	recs, err := loadIdempotency(ctx, s)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	kept := recs[:0]
	for _, r := range recs {
		if r.ExpiresAt.After(now) {
			kept = append(kept, r)
		}
	}

	rec := domain.IdempotencyRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Key:       key,
		BookingID: bookingID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	kept = append(kept, rec)

	if err := save(ctx, s, ColIdempotency, kept); err != nil {
		return nil, err
	}
	return &rec, nil
}
