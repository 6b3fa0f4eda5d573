package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lifecoach/internal/errs"
)

// SecurityHeaders sets the conventional hardening headers on every
// response
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// statusFor maps the error taxonomy to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrCoaching):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns a safe error string for response bodies. Category
// errors carry user-safe messages; anything else gets a generic one.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrNotFound):
		return err.Error()
	case errors.Is(err, errs.ErrCoaching):
		return "I'm experiencing technical difficulties. Please try again later."
	default:
		return "Server error"
	}
}
