package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"sunnyway/internal/pool"
	"sunnyway/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "start off network", err: fmt.Errorf("%w: nothing near", services.ErrStartNotOnNetwork), want: http.StatusBadRequest},
		{name: "invalid point", err: services.ErrInvalidPoint, want: http.StatusBadRequest},
		{name: "no route", err: fmt.Errorf("%w: 0->3", services.ErrNoRoute), want: http.StatusNotFound},
		{name: "queue full", err: fmt.Errorf("navigate: %w", pool.ErrQueueFull), want: http.StatusServiceUnavailable},
		{name: "pool closed", err: pool.ErrPoolClosed, want: http.StatusServiceUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{
			name: "canceled while locating start",
			err:  fmt.Errorf("%w: %w", services.ErrStartNotOnNetwork, context.Canceled),
			want: http.StatusGatewayTimeout,
		},
		{
			name: "deadline while locating end",
			err:  fmt.Errorf("%w: %w", services.ErrEndNotOnNetwork, context.DeadlineExceeded),
			want: http.StatusGatewayTimeout,
		},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
