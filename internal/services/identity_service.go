// Package services – IdentityService
//
// This file implements the IdentityService, which owns the user collection,
// the per-email credential map, and the single current-session snapshot. All
// writes are whole-collection read-modify-write cycles serialized by a mutex,
// so concurrent HTTP callers cannot lose each other's updates.
//
// The session holds a full copy of the user record, not a live reference:
// profile edits become visible to the session only when the mutating
// operation refreshes it (UpdateAddress does, for the session owner).
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-lpg-backend/internal/domain"
	"github.com/tbourn/go-lpg-backend/internal/kv"
	"github.com/tbourn/go-lpg-backend/internal/repo"
)

// IdentityService manages user records, credentials, and the session pointer.
type IdentityService struct {
	// Store is the collection store holding users, passwords, and the session.
	Store kv.Store

	// mu serializes read-modify-write cycles over the collections.
	mu sync.Mutex
}

// NewIdentityService constructs an IdentityService over the given store.
func NewIdentityService(store kv.Store) *IdentityService {
	return &IdentityService{Store: store}
}

// ListUsers returns all registered users in insertion order.
func (s *IdentityService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return repo.LoadUsers(ctx, s.Store)
}

// Register creates a new user and stores its credential. It fails with
// ErrDuplicateEmail when the email is already registered, leaving the store
// untouched. The new user is returned but NOT made the current session;
// callers that want a signed-in flow follow up with Login.
func (s *IdentityService) Register(ctx context.Context, email, password, name, phone, address string) (*domain.User, error) {
	tr := otel.Tracer("services/IdentityService")
	ctx, span := tr.Start(ctx, "Register")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := repo.LoadUsers(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Phone:     phone,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}
	users = append(users, user)
	if err := repo.SaveUsers(ctx, s.Store, users); err != nil {
		return nil, err
	}

	passwords, err := repo.LoadPasswords(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	passwords[email] = password
	if err := repo.SavePasswords(ctx, s.Store, passwords); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates email/password and, on success, stores a full snapshot
// of the user as the current session. Unknown emails and wrong passwords are
// distinguishable (ErrUserNotFound vs ErrInvalidCredential).
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	tr := otel.Tracer("services/IdentityService")
	ctx, span := tr.Start(ctx, "Login")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := repo.LoadUsers(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	var user *domain.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	passwords, err := repo.LoadPasswords(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	if passwords[email] != password {
		return nil, ErrInvalidCredential
	}

	if err := repo.SaveCurrentUser(ctx, s.Store, user); err != nil {
		return nil, err
	}
	out := *user
	return &out, nil
}

// Logout clears the session unconditionally; logging out with no active
// session is a no-op.
func (s *IdentityService) Logout(ctx context.Context) error {
	tr := otel.Tracer("services/IdentityService")
	ctx, span := tr.Start(ctx, "Logout")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	return repo.SaveCurrentUser(ctx, s.Store, nil)
}

// CurrentUser returns the session snapshot, or nil when nobody is logged in.
func (s *IdentityService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return repo.LoadCurrentUser(ctx, s.Store)
}

// UpdateAddress overwrites the address of the user with userID and persists
// the user list. When the updated user is the current session holder, the
// session snapshot is refreshed so the change is immediately visible there.
// It returns false (and mutates nothing) when the user id is unknown.
func (s *IdentityService) UpdateAddress(ctx context.Context, userID, newAddress string) (bool, error) {
	tr := otel.Tracer("services/IdentityService")
	ctx, span := tr.Start(ctx, "UpdateAddress",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := repo.LoadUsers(ctx, s.Store)
	if err != nil {
		return false, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	users[idx].Address = newAddress
	if err := repo.SaveUsers(ctx, s.Store, users); err != nil {
		return false, err
	}

	current, err := repo.LoadCurrentUser(ctx, s.Store)
	if err != nil {
		return false, err
	}
	if current != nil && current.ID == userID {
		if err := repo.SaveCurrentUser(ctx, s.Store, &users[idx]); err != nil {
			return false, err
		}
	}
	return true, nil
}
