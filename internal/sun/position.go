// Package sun models where the sun is and how strongly it exposes a street.
//
// Calculate gives the solar position for a place and instant using the
// classic declination / equation-of-time approximation, good to a fraction
// of a degree, which is all a shadow heuristic needs. Factor turns that
// position plus a street's geometry into a cost multiplier, and CostCache
// memoizes those multipliers per edge for one search.
package sun

import (
	"math"
	"time"
)

// MinElevationDegrees is the elevation below which the sun is treated as set.
const MinElevationDegrees = 1.0

// Position is the solar position at one place and instant.
type Position struct {
	// Elevation above the horizon and compass azimuth, both in radians.
	// Azimuth is in [0, 2π), measured clockwise from north.
	Elevation float64 `json:"elevation"`
	Azimuth   float64 `json:"azimuth"`
	Zenith    float64 `json:"zenith"`

	Declination    float64 `json:"declination"`    // degrees
	EquationOfTime float64 `json:"equationOfTime"` // minutes
	LocalMeridian  float64 `json:"localMeridian"`  // degrees
	TimeCorrection float64 `json:"timeCorrection"` // minutes

	// Sunrise and Sunset are local clock hours. During polar day or night
	// they collapse onto solar noon or span the whole day.
	Sunrise float64 `json:"sunrise"`
	Sunset  float64 `json:"sunset"`
}

// ElevationDegrees returns the elevation in degrees.
func (p Position) ElevationDegrees() float64 { return degrees(p.Elevation) }

// AzimuthDegrees returns the azimuth in degrees, in [0, 360).
func (p Position) AzimuthDegrees() float64 { return degrees(p.Azimuth) }

// IsSunUp reports whether the sun is high enough to cast shadows.
func (p Position) IsSunUp() bool {
	return p.ElevationDegrees() >= MinElevationDegrees
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }

func clamp1(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// Calculate returns the solar position at lat, lon (degrees) for instant t.
// The local clock is t read in the fixed zone UTC+utcOffsetHours, which also
// fixes the standard meridian used for the time correction.
func Calculate(lat, lon float64, t time.Time, utcOffsetHours int) Position {
	local := t.In(time.FixedZone("", utcOffsetHours*3600))
	minutes := float64(local.Hour()*60 + local.Minute())
	day := float64(local.YearDay())

	b := radians(360.0 / 365.0 * (day - 81))
	declination := 23.45 * math.Sin(b)
	decl := radians(declination)
	phi := radians(lat)

	eot := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
	lstm := 15.0 * float64(utcOffsetHours)
	tc := eot + 4*(lon-lstm)
	lst := minutes/60 + tc/60

	// half day length in hours
	halfDay := math.Acos(clamp1(-math.Tan(phi)*math.Tan(decl))) / radians(15)

	hra := radians(15 * (lst - 12))
	alt := math.Asin(clamp1(math.Sin(decl)*math.Sin(phi) + math.Cos(decl)*math.Cos(phi)*math.Cos(hra)))
	azi := math.Acos(clamp1((math.Cos(phi)*math.Sin(decl) - math.Cos(decl)*math.Sin(phi)*math.Cos(hra)) / math.Cos(alt)))
	if hra > 0 {
		azi = 2*math.Pi - azi
	}
	if azi >= 2*math.Pi {
		azi -= 2 * math.Pi
	}

	return Position{
		Elevation:      alt,
		Azimuth:        azi,
		Zenith:         math.Pi/2 - alt,
		Declination:    declination,
		EquationOfTime: eot,
		LocalMeridian:  lstm,
		TimeCorrection: tc,
		Sunrise:        12 - halfDay - tc/60,
		Sunset:         12 + halfDay - tc/60,
	}
}
