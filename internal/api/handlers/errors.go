package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sunnyway/internal/pool"
	"sunnyway/internal/services"
)

// retryAfterSeconds is suggested to clients shed by a full navigator queue.
const retryAfterSeconds = "1"

// statusFor maps a service error onto an HTTP status. Context errors are
// checked first since the locate sentinels wrap them too.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errors.Is(err, services.ErrStartNotOnNetwork),
		errors.Is(err, services.ErrEndNotOnNetwork),
		errors.Is(err, services.ErrPointNotOnNetwork),
		errors.Is(err, services.ErrInvalidAlgorithm),
		errors.Is(err, services.ErrInvalidMaxFactor),
		errors.Is(err, services.ErrInvalidRadius),
		errors.Is(err, services.ErrInvalidPoint):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoRoute):
		return http.StatusNotFound
	case errors.Is(err, pool.ErrQueueFull), errors.Is(err, pool.ErrPoolClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Internal faults are recorded on
// the context for the access log and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", retryAfterSeconds)
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
