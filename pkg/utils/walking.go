package utils

import (
	"math"
	"time"
)

const (
	// EarthRadiusMeters is the mean Earth radius used to normalise every
	// great-circle distance in the service.
	EarthRadiusMeters = 6371000.0

	// PedestrianSpeed is the walking speed in meters per second used to turn
	// an edge length into an estimated traverse time.
	PedestrianSpeed = 0.9
)

// HaversineMeters returns the great-circle distance in meters between two
// points given in degrees.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180
	sinLat := math.Sin((lat2 - lat1) * rad / 2)
	sinLon := math.Sin((lon2 - lon1) * rad / 2)
	h := sinLat*sinLat + math.Cos(lat1*rad)*math.Cos(lat2*rad)*sinLon*sinLon
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(math.Min(h, 1)))
}

// TraverseTime estimates how long a pedestrian needs to walk distanceMeters.
// Sub-millisecond remainders are truncated, matching the millisecond clock
// the shadow navigator advances.
func TraverseTime(distanceMeters float64) time.Duration {
	if distanceMeters <= 0 {
		return 0
	}
	ms := math.Floor(1000 * distanceMeters / PedestrianSpeed)
	return time.Duration(ms) * time.Millisecond
}
