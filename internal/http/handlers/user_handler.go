// User profile HTTP handlers.
//
// This file exposes REST endpoints for account records:
//   - GET /users               (list every registered account)
//   - PUT /users/{id}/address  (rewrite a user's delivery address)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-lpg-backend/internal/domain"
)

//
// DTOs
//

// ListUsersResponse wraps the full list of registered accounts.
type ListUsersResponse struct {
	Users []domain.User `json:"users"`
}

// UpdateAddressRequest is the JSON payload for rewriting a delivery address.
type UpdateAddressRequest struct {
	// Address is the new default delivery address (1–500 chars).
	Address string `json:"address" binding:"required,min=1,max=500" example:"44 Brigade Road, Bengaluru"`
}

//
// Handlers
//

// ListUsers godoc
// @ID          listUsers
// @Summary     List registered users
// @Description Returns every registered account in insertion order. Credentials
// @Description are never part of the user resource.
// @Tags        Users
// @Produce     json
//
// @Success     200  {object}  handlers.ListUsersResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.idSvc.ListUsers(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{Users: users})
}

// UpdateAddress godoc
// @ID          updateAddress
// @Summary     Update a user's address
// @Description Rewrites the user's default delivery address. When the user owns
// @Description the current session, the session snapshot is refreshed too.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateAddressRequest  true  "New address"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     503  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /users/{id}/address [put]
func (h *Handlers) UpdateAddress(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address required (1–500 chars)")
		return
	}

	found, err := h.idSvc.UpdateAddress(c.Request.Context(), id, strings.TrimSpace(req.Address))
	if err != nil {
		failErr(c, err)
		return
	}
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	noContent(c)
}
