// Booking HTTP handlers.
//
// This file exposes REST endpoints for cylinder bookings:
//   - POST /bookings              (create; Idempotency-Key replay supported)
//   - GET  /bookings              (list, optionally by user, paginated)
//   - GET  /bookings/{id}         (fetch one)
//   - POST /bookings/{id}/cancel  (cancel; terminal states rejected here)
//   - GET  /bookings/summary      (per-user quick stats)
//
// Handlers are transport-thin:
//   - validate & normalize inputs (quantity bounds, enum membership)
//   - delegate to application services (BookingService)
//   - enforce the cancellation eligibility check; the store itself cancels
//     unconditionally, so the boundary is the only place terminal states
//     are rejected
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (user, key), the handler returns that recorded booking
// and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-lpg-backend/internal/domain"
	"github.com/tbourn/go-lpg-backend/internal/http/middleware"
	"github.com/tbourn/go-lpg-backend/internal/kv"
	"github.com/tbourn/go-lpg-backend/internal/repo"
	"github.com/tbourn/go-lpg-backend/internal/services"
	"github.com/tbourn/go-lpg-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// BookingService defines booking lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BookingService interface {
	// List returns bookings in insertion order; empty userID means all.
	List(ctx context.Context, userID string) ([]domain.Booking, error)
	// Create records a confirmed booking with a computed amount and
	// delivery date.
	Create(ctx context.Context, userID string, cylinderType domain.CylinderType, quantity int, deliveryAddress string, paymentMethod domain.PaymentMethod) (*domain.Booking, error)
	// Cancel marks a booking cancelled; false means unknown id.
	Cancel(ctx context.Context, bookingID string) (bool, error)
	// Get returns a booking by id, or nil when absent.
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	// Summary aggregates booking counts for a user.
	Summary(ctx context.Context, userID string) (*services.BookingSummary, error)
}

//
// DTOs
//

// CreateBookingRequest is the JSON payload for booking a cylinder refill.
type CreateBookingRequest struct {
	// UserID identifies the account the booking belongs to.
	UserID string `json:"user_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// CylinderType is "14.2kg" or "5kg".
	CylinderType string `json:"cylinder_type" binding:"required" example:"14.2kg"`
	// Quantity is the number of cylinders (1–5).
	Quantity int `json:"quantity" example:"2"`
	// PaymentMethod is one of card, upi, netbanking, cod.
	PaymentMethod string `json:"payment_method" binding:"required" example:"upi"`
	// DeliveryAddress is where the cylinders are dropped off.
	DeliveryAddress string `json:"delivery_address" binding:"required,min=1" example:"12 MG Road, Kochi"`
}

// BookingView is the wire shape of a booking, extending the stored record
// with presentation fields derived from status and amount.
type BookingView struct {
	domain.Booking
	// StatusLabel is the human-readable status ("Out for Delivery").
	StatusLabel string `json:"status_label"`
	// StatusColor is the UI badge variant for the status.
	StatusColor string `json:"status_color"`
	// DisplayAmount renders the amount in rupees with Indian grouping.
	DisplayAmount string `json:"display_amount"`
}

// newBookingView derives the presentation fields for a stored booking.
func newBookingView(b domain.Booking) BookingView {
	return BookingView{
		Booking:       b,
		StatusLabel:   b.Status.Label(),
		StatusColor:   b.Status.Color(),
		DisplayAmount: domain.FormatINR(b.Amount),
	}
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListBookingsResponse wraps a page of bookings and pagination information.
type ListBookingsResponse struct {
	Bookings   []BookingView `json:"bookings"`
	Pagination Pagination    `json:"pagination"`
}

// BookingResponse is the JSON envelope for a single booking.
type BookingResponse struct {
	Booking BookingView `json:"booking"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// idemStore inspects the concrete BookingService for the key-value store that
// backs idempotency records. Nil when the handler was wired with a fake.
func (h *Handlers) idemStore() kv.Store {
	if bs, ok := h.bookingSvc.(*services.BookingService); ok {
		return bs.Store
	}
	return nil
}

//
// Handlers
//

// CreateBooking godoc
// @ID          createBooking
// @Summary     Book a cylinder refill
// @Description Creates a confirmed booking. The amount is locked in from the
// @Description current price table and the delivery date is set 48 hours out.
// @Description Supports idempotency via the Idempotency-Key header (same key
// @Description for the same user returns the original booking with 200).
// @Tags        Bookings
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateBookingRequest  true  "Booking payload"
//
// @Success     201  {object}  handlers.BookingResponse       "Booking created"
// @Success     200  {object}  handlers.BookingResponse       "Idempotent replay"
// @Failure     400  {object}  handlers.ErrorResponse         "Bad request"
// @Failure     503  {object}  handlers.ErrorResponse         "Storage unavailable"
// @Router      /bookings [post]
func (h *Handlers) CreateBooking(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id, cylinder_type, payment_method and delivery_address are required")
		return
	}

	ct := domain.CylinderType(strings.TrimSpace(req.CylinderType))
	if !ct.Valid() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest,
			fmt.Sprintf("cylinder_type must be %q or %q", domain.Cylinder14Kg, domain.Cylinder5Kg))
		return
	}
	if req.Quantity < 1 || req.Quantity > 5 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "quantity must be between 1 and 5")
		return
	}
	pm := domain.PaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if !pm.Valid() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "payment_method must be one of card, upi, netbanking, cod")
		return
	}
	addr := strings.TrimSpace(req.DeliveryAddress)
	if addr == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "delivery_address required")
		return
	}

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := idempotencyKey(c)
	if idemKey != "" {
		if store := h.idemStore(); store != nil {
			if rec, err := repo.GetIdempotency(ctx, store, req.UserID, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := h.bookingSvc.Get(ctx, rec.BookingID); err2 == nil && prev != nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, BookingResponse{Booking: newBookingView(*prev)})
					return
				}
			}
		}
	}

	b, err := h.bookingSvc.Create(ctx, req.UserID, ct, req.Quantity, addr, pm)
	if err != nil {
		failErr(c, err)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if store := h.idemStore(); store != nil {
			ttl := 24 * time.Hour
			_, _ = repo.CreateIdempotency(ctx, store, req.UserID, idemKey, b.ID, http.StatusCreated, ttl)
		}
	}

	ok(c, http.StatusCreated, BookingResponse{Booking: newBookingView(*b)})
}

// ListBookings godoc
// @ID          listBookings
// @Summary     List bookings (paginated)
// @Description Returns a page of bookings in insertion order, optionally
// @Description filtered to one user.
// @Tags        Bookings
// @Produce     json
//
// @Param       user_id    query  string  false "Filter to one user's bookings"  format(uuid)
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListBookingsResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /bookings [get]
func (h *Handlers) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()
	userID := strings.TrimSpace(c.Query("user_id"))
	page, pageSize := clampPagination(c)

	items, err := h.bookingSvc.List(ctx, userID)
	if err != nil {
		failErr(c, err)
		return
	}

	total := int64(len(items))
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	views := make([]BookingView, 0, end-start)
	for _, b := range items[start:end] {
		views = append(views, newBookingView(b))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListBookingsResponse{
		Bookings: views,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetBooking godoc
// @ID          getBooking
// @Summary     Fetch a booking
// @Description Returns a single booking by id.
// @Tags        Bookings
// @Produce     json
//
// @Param       id  path  string  true  "Booking ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.BookingResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Booking not found"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /bookings/{id} [get]
func (h *Handlers) GetBooking(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "booking id must be a UUID")
		return
	}

	b, err := h.bookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	if b == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "booking not found")
		return
	}
	ok(c, http.StatusOK, BookingResponse{Booking: newBookingView(*b)})
}

// CancelBooking godoc
// @ID          cancelBooking
// @Summary     Cancel a booking
// @Description Cancels a booking that has not reached a terminal state.
// @Description Delivered and already-cancelled bookings are rejected with 409;
// @Description the eligibility check lives here at the boundary, not in the
// @Description store.
// @Tags        Bookings
// @Produce     json
//
// @Param       id  path  string  true  "Booking ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Booking not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Booking not cancellable"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /bookings/{id}/cancel [post]
func (h *Handlers) CancelBooking(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "booking id must be a UUID")
		return
	}

	b, err := h.bookingSvc.Get(ctx, id)
	if err != nil {
		failErr(c, err)
		return
	}
	if b == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "booking not found")
		return
	}
	if b.Status.Terminal() {
		fail(c, http.StatusConflict, ErrCodeNotCancellable,
			fmt.Sprintf("booking is %s and can no longer be cancelled", b.Status))
		return
	}

	found, err := h.bookingSvc.Cancel(ctx, id)
	if err != nil {
		failErr(c, err)
		return
	}
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "booking not found")
		return
	}
	noContent(c)
}

// BookingSummary godoc
// @ID          bookingSummary
// @Summary     Booking quick stats
// @Description Aggregates total, active, delivered and cancelled booking counts,
// @Description optionally for one user.
// @Tags        Bookings
// @Produce     json
//
// @Param       user_id  query  string  false "Scope the summary to one user"  format(uuid)
//
// @Success     200  {object}  services.BookingSummary
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /bookings/summary [get]
func (h *Handlers) BookingSummary(c *gin.Context) {
	s, err := h.bookingSvc.Summary(c.Request.Context(), strings.TrimSpace(c.Query("user_id")))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// idempotencyKey prefers the validated key stashed by the middleware and
// falls back to the raw header so the handler also works on routers mounted
// without the validator (as in tests).
func idempotencyKey(c *gin.Context) (string, bool) {
	if key, ok := middleware.GetIdempotencyKey(c); ok {
		return key, true
	}
	if v := strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey)); v != "" {
		return v, true
	}
	return "", false
}
