// Package services – BookingService
//
// This file implements the BookingService, which owns the booking collection:
// creation with derived pricing and delivery window, listing with an optional
// owner filter, lookup, and cancellation. Writes are whole-collection
// read-modify-write cycles serialized by a mutex.
//
// The service intentionally does NOT gate status transitions: Cancel sets any
// existing booking to cancelled, terminal or not. Cancellation eligibility
// (not delivered, not already cancelled) is the caller's pre-check, enforced
// at the HTTP boundary. It also does not verify that the owning user exists;
// a booking references its user by id only.
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

// BookingService manages the lifecycle of cylinder bookings.
type BookingService struct {
	// Store is the collection store holding the bookings document.
	Store kv.Store

	// mu serializes read-modify-write cycles over the collection.
	mu sync.Mutex
}

// NewBookingService constructs a BookingService over the given store.
func NewBookingService(store kv.Store) *BookingService {
	return &BookingService{Store: store}
}

// List returns bookings in insertion order. An empty userID returns every
// booking; otherwise only those owned by userID, order preserved.
func (s *BookingService) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	bookings, err := repo.LoadBookings(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return bookings, nil
	}
	out := []domain.Booking{}
	for _, b := range bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Create books cylinders for userID. The amount is locked in from the pricing
// table (unit price x quantity), the status starts at confirmed (there is no
// pending-approval step), and the delivery date is promised two days out.
// Quantity bounds are the input boundary's job and are not re-checked here.
func (s *BookingService) Create(ctx context.Context, userID string, cylinderType domain.CylinderType, quantity int, deliveryAddress string, paymentMethod domain.PaymentMethod) (*domain.Booking, error) {
	tr := otel.Tracer("services/BookingService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("booking.cylinder_type", string(cylinderType)),
			attribute.Int("booking.quantity", quantity),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := repo.LoadBookings(ctx, s.Store)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := domain.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		CylinderType:    cylinderType,
		Quantity:        quantity,
		DeliveryAddress: deliveryAddress,
		Status:          domain.StatusConfirmed,
		PaymentMethod:   paymentMethod,
		Amount:          domain.PriceFor(cylinderType, quantity),
		CreatedAt:       now,
		DeliveryDate:    now.Add(domain.DeliveryWindow),
	}
	bookings = append(bookings, booking)
	if err := repo.SaveBookings(ctx, s.Store, bookings); err != nil {
		return nil, err
	}

	bookingsCreated.WithLabelValues(string(cylinderType)).Inc()
	return &booking, nil
}

// Cancel sets the booking's status to cancelled regardless of its current
// status; the store has no transition guard. It returns false and mutates
// nothing when the id is unknown.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (bool, error) {
	tr := otel.Tracer("services/BookingService")
	ctx, span := tr.Start(ctx, "Cancel",
		trace.WithAttributes(attribute.String("booking.id", bookingID)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := repo.LoadBookings(ctx, s.Store)
	if err != nil {
		return false, err
	}
	idx := -1
	for i := range bookings {
		if bookings[i].ID == bookingID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	bookings[idx].Status = domain.StatusCancelled
	if err := repo.SaveBookings(ctx, s.Store, bookings); err != nil {
		return false, err
	}

	bookingsCancelled.Inc()
	return true, nil
}

// Get returns the booking with bookingID, or nil when absent.
func (s *BookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	bookings, err := repo.LoadBookings(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			b := bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

// BookingSummary aggregates a user's booking counts for the dashboard view.
// Active bookings are those in a non-terminal status.
type BookingSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// Summary computes the per-user booking counters in one pass.
func (s *BookingService) Summary(ctx context.Context, userID string) (*BookingSummary, error) {
	bookings, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := &BookingSummary{Total: len(bookings)}
	for _, b := range bookings {
		switch {
		case b.Status == domain.StatusDelivered:
			sum.Delivered++
		case b.Status == domain.StatusCancelled:
			sum.Cancelled++
		default:
			sum.Active++
		}
	}
	return sum, nil
}
