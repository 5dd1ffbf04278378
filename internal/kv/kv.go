// Package kv provides the collection store that backs all persisted state.
//
// The application keeps its data as a handful of named collections (users,
// bookings, passwords, current_user, idempotency), each serialized as one
// JSON document. A Store only needs to fetch and replace whole documents;
// read-modify-write cycles and locking live above it in the service layer.
//
// Three backends implement the interface: an in-process map (tests, dev), a
// single-table SQLite database, and Redis.
package kv

import "context"

// Store is the persistence contract for named JSON collections.
//
// Get returns the stored document and true, or (nil, false, nil) when the
// collection has never been written. Put replaces the document in full.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}
