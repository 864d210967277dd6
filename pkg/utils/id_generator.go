// Package utils provides shared helpers used across the application: request
// identifiers, great-circle distance and walking-time estimates.
//
// Go Learning Note — "pkg/" Directory Convention:
// Code under pkg/ is intended to be importable by external projects (unlike
// internal/ which is compiler-enforced private). This is a community convention,
// not a Go language feature.
package utils

import (
	"github.com/google/uuid"
)

// GenerateID creates a new UUID v4 string. The HTTP layer uses it as the
// request ID that ties access logs, pool logs and responses together.
//
// Go Learning Note — "github.com/google/uuid":
// uuid.New() creates a v4 (random) UUID like
// "550e8400-e29b-41d4-a716-446655440000". It needs no coordination between
// processes, which is all a correlation ID has to guarantee.
func GenerateID() string {
	return uuid.New().String()
}

// IsValidID reports whether s parses as a UUID. Incoming X-Request-ID headers
// that fail this check are replaced rather than echoed back into the logs.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
