// Authentication and session HTTP handlers.
//
// This file exposes REST endpoints for the identity lifecycle:
//   - POST /auth/register  (create an account)
//   - POST /auth/login     (open the single shared session)
//   - POST /auth/logout    (close the session)
//   - GET  /auth/me        (read the session snapshot)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Unknown-email and wrong-password
// login failures are deliberately distinguishable (404 vs 401) so clients can
// route users to registration.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-lpg-backend/internal/domain"
	"github.com/tbourn/go-lpg-backend/internal/repo"
	"github.com/tbourn/go-lpg-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// IdentityService defines account and session operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IdentityService interface {
	// ListUsers returns every registered account in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// Register creates an account; email uniqueness is case-sensitive.
	Register(ctx context.Context, email, password, name, phone, address string) (*domain.User, error)
	// Login verifies the credential and installs the session snapshot.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// Logout clears the session; it is idempotent.
	Logout(ctx context.Context) error
	// CurrentUser returns the session snapshot, or nil when logged out.
	CurrentUser(ctx context.Context) (*domain.User, error)
	// UpdateAddress rewrites a user's address; false means unknown id.
	UpdateAddress(ctx context.Context, userID, newAddress string) (bool, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for accounts, sessions, and bookings.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	idSvc      IdentityService
	bookingSvc BookingService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(idSvc IdentityService, bookingSvc BookingService) *Handlers {
	return &Handlers{idSvc: idSvc, bookingSvc: bookingSvc}
}

// failErr maps service/storage errors that are not business outcomes to a
// generic HTTP response. Persistence outages surface as 503 so clients can
// retry; everything else is a 500.
func failErr(c *gin.Context, err error) {
	if errors.Is(err, repo.ErrStorageUnavailable) {
		fail(c, http.StatusServiceUnavailable, ErrCodeStorageUnavailable, "storage unavailable")
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
}

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	// Email is the unique login key (comparison is case-sensitive).
	Email string `json:"email" binding:"required,email" example:"asha@example.com"`
	// Password is stored as the login credential.
	Password string `json:"password" binding:"required,min=1" example:"s3cret"`
	// Name is the account holder's display name.
	Name string `json:"name" binding:"required,min=1" example:"Asha Nair"`
	// Phone is an optional contact number.
	Phone string `json:"phone" example:"+91 98765 43210"`
	// Address is the default delivery address for new bookings.
	Address string `json:"address" binding:"required,min=1" example:"12 MG Road, Kochi"`
}

// LoginRequest is the JSON payload for opening a session.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Register a new account
// @Description Creates an account and returns the user resource. The session is
// @Description not opened; clients log in explicitly afterwards.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email, password, name and address are required")
		return
	}

	u, err := h.idSvc.Register(c.Request.Context(),
		strings.TrimSpace(req.Email), req.Password,
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Phone), strings.TrimSpace(req.Address))
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			fail(c, http.StatusConflict, ErrCodeEmailTaken, "email already registered")
			return
		}
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies the credential and installs the user as the current
// @Description session. Unknown emails return 404 so clients can offer
// @Description registration; wrong passwords return 401.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Incorrect password"
// @Failure     404  {object}  handlers.ErrorResponse  "No account for that email"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password required")
		return
	}

	u, err := h.idSvc.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no account for that email")
		case errors.Is(err, services.ErrInvalidCredential):
			fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "incorrect password")
		default:
			failErr(c, err)
		}
		return
	}
	ok(c, http.StatusOK, u)
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Clears the current session. Logging out without a session is a
// @Description no-op and still succeeds.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string}  string  "No Content"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.idSvc.Logout(c.Request.Context()); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// Me godoc
// @ID          me
// @Summary     Current session
// @Description Returns the user snapshot stored at login. The snapshot only
// @Description refreshes when the session owner updates their own address.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "No active session"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.idSvc.CurrentUser(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	if u == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no active session")
		return
	}
	ok(c, http.StatusOK, u)
}
