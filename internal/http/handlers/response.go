// Package handlers provides HTTP handler implementations for the public API.
//
// This file holds the shared response helpers. Every endpoint writes its
// failures through fail() so the error envelope is uniform across the API:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "email_taken",
//	  "message": "an account with this email already exists"
//	}
//
// Success bodies are endpoint-specific JSON written via ok(), or a bare 204
// via noContent() for operations with nothing to return (logout, cancel,
// address update).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-lpg-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints. Code is one
// of the stable machine-readable constants in errors.go; RequestID echoes the
// X-Request-ID header so a client report can be matched to server logs.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
}

// fail aborts the request with a structured error. Server-side failures
// (>= 500) are additionally logged with the request-scoped logger; client
// errors are already visible in the access log.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail exposes fail() to the router for NoRoute/NoMethod handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
