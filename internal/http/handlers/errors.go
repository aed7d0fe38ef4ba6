package handlers

import (
	"errors"
	"net/http"

	"safari-backend/internal/domain"
	"safari-backend/internal/http/middleware"
	"safari-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var (
		capErr   domain.CapacityExceededError
		transErr domain.InvalidTransitionError
	)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.As(err, &capErr):
		respondError(c, http.StatusConflict, "capacity_exceeded", err.Error(), gin.H{
			"remainingSeats": capErr.Remaining,
			"requestedSeats": capErr.Requested,
			"timeSlot":       capErr.Slot,
		})
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsExpired(err):
		respondError(c, http.StatusConflict, "already_expired", err.Error(), nil)
	case errors.As(err, &transErr):
		respondError(c, http.StatusConflict, "invalid_transition", err.Error(), gin.H{"from": transErr.From, "to": transErr.To})
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	default:
		_ = c.Error(err)
		msg := err.Error()
		if inner := errors.Unwrap(err); inner != nil {
			msg += ": " + inner.Error()
		}
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", msg)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
