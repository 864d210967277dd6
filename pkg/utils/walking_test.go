package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same location",
			lat1:      59.9343,
			lon1:      30.3351,
			lat2:      59.9343,
			lon2:      30.3351,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "One degree of latitude",
			lat1:      59.0,
			lon1:      30.0,
			lat2:      60.0,
			lon2:      30.0,
			expected:  EarthRadiusMeters * math.Pi / 180,
			tolerance: 0.01,
		},
		{
			name:      "Saint Petersburg to Moscow",
			lat1:      59.9343,
			lon1:      30.3351,
			lat2:      55.7558,
			lon2:      37.6173,
			expected:  634000,
			tolerance: 5000,
		},
		{
			name:      "Across the antimeridian",
			lat1:      0,
			lon1:      179.9995,
			lat2:      0,
			lon2:      -179.9995,
			expected:  EarthRadiusMeters * math.Pi / 180 / 1000,
			tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, result, tt.tolerance)
		})
	}
}

func TestTraverseTime(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected time.Duration
	}{
		{name: "Zero distance", distance: 0, expected: 0},
		{name: "Negative distance", distance: -5, expected: 0},
		{name: "Nine meters", distance: 9, expected: 10 * time.Second},
		{name: "Hundred meters", distance: 100, expected: 111111 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TraverseTime(tt.distance))
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	assert.NotEqual(t, a, b)
	assert.True(t, IsValidID(a))
	assert.False(t, IsValidID("not-a-uuid"))
}

func BenchmarkHaversineMeters(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HaversineMeters(59.9343, 30.3351, 59.9400, 30.3500)
	}
}
