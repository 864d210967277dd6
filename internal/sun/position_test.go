package sun

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_WinterAfternoon(t *testing.T) {
	// 2022-01-01 14:30 in UTC+3
	pos := Calculate(59.9, 30.3609, time.Unix(1641036600, 0), 3)

	assert.InDelta(t, 0.0901067, pos.Elevation, 1e-6)
	assert.InDelta(t, 5.16274, pos.ElevationDegrees(), 1e-4)
	assert.InDelta(t, 3.4940698, pos.Azimuth, 1e-6)
	assert.InDelta(t, 1.4806896, pos.Zenith, 1e-6)
	assert.InDelta(t, -23.0116367, pos.Declination, 1e-6)
	assert.InDelta(t, -3.7051783, pos.EquationOfTime, 1e-6)
	assert.InDelta(t, 45.0, pos.LocalMeridian, 1e-9)
	assert.InDelta(t, -62.2615783, pos.TimeCorrection, 1e-6)
	assert.InDelta(t, 10.1784, pos.Sunrise, 1e-3)
	assert.InDelta(t, 15.8970, pos.Sunset, 1e-3)
	assert.True(t, pos.IsSunUp())
}

func TestCalculate_ZoneOnlyAffectsClockReading(t *testing.T) {
	instant := time.Date(2022, 1, 1, 11, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	// the same instant expressed in another zone gives the same answer
	a := Calculate(59.9, 30.3609, instant, 3)
	b := Calculate(59.9, 30.3609, instant.In(tokyo), 3)

	assert.Equal(t, a, b)
}

func TestCalculate_Cases(t *testing.T) {
	tests := []struct {
		name          string
		lat, lon      float64
		at            time.Time
		offset        int
		wantElevation float64 // degrees
		wantAzimuth   float64 // degrees
		wantUp        bool
	}{
		{
			name:          "Midsummer noon",
			lat:           59.9,
			lon:           30.302,
			at:            time.Date(2022, 6, 21, 10, 0, 0, 0, time.UTC),
			offset:        3,
			wantElevation: 53.5498,
			wantAzimuth:   179.9076,
			wantUp:        true,
		},
		{
			name:          "Winter night",
			lat:           59.9,
			lon:           30.302,
			at:            time.Date(2021, 12, 31, 23, 0, 0, 0, time.UTC),
			offset:        3,
			wantElevation: -51.7533,
			wantAzimuth:   21.6633,
			wantUp:        false,
		},
		{
			name:          "Polar day",
			lat:           78,
			lon:           15,
			at:            time.Date(2022, 6, 21, 10, 0, 0, 0, time.UTC),
			offset:        1,
			wantElevation: 34.9719,
			wantAzimuth:   162.7472,
			wantUp:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Calculate(tt.lat, tt.lon, tt.at, tt.offset)

			assert.InDelta(t, tt.wantElevation, pos.ElevationDegrees(), 1e-3)
			assert.InDelta(t, tt.wantAzimuth, pos.AzimuthDegrees(), 1e-3)
			assert.Equal(t, tt.wantUp, pos.IsSunUp())
			assert.GreaterOrEqual(t, pos.Azimuth, 0.0)
			assert.Less(t, pos.Azimuth, 2*math.Pi)
		})
	}
}

func TestCalculate_PolarDayAndNightStayFinite(t *testing.T) {
	day := Calculate(78, 15, time.Date(2022, 6, 21, 10, 0, 0, 0, time.UTC), 1)
	night := Calculate(78, 15, time.Date(2022, 12, 21, 10, 0, 0, 0, time.UTC), 1)

	for _, v := range []float64{day.Sunrise, day.Sunset, night.Sunrise, night.Sunset} {
		assert.False(t, math.IsNaN(v))
	}
	assert.InDelta(t, 24, day.Sunset-day.Sunrise, 1e-9)
	assert.InDelta(t, 0, night.Sunset-night.Sunrise, 1e-9)
	assert.False(t, night.IsSunUp())
}

func TestIsSunUp_Threshold(t *testing.T) {
	assert.True(t, Position{Elevation: radians(1)}.IsSunUp())
	assert.False(t, Position{Elevation: radians(0.99)}.IsSunUp())
}
