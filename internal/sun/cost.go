package sun

import (
	"math"

	"sunnyway/internal/graph"
)

const (
	// DefaultMaxFactor is the exposure multiplier used when a request does
	// not set one.
	DefaultMaxFactor = 10.0

	minSunAngle = 5.0
	maxSunAngle = 50.0
)

// Factor returns the cost multiplier, in [1, maxFactor], for walking a street
// with bearing direction (degrees) while the sun is at pos.
//
// The sun lights one side of the street. The occlusion of that side,
// leftShadow or rightShadow, is scaled by how squarely the sun crosses the
// street: not at all below 5° off the street axis, fully from 50°. The
// result is the street's shade in [0, 1]. With preferShadow a fully shaded
// street costs 1 and an exposed one maxFactor; otherwise the other way round.
// A sun running along the street shades nothing.
//
// Factor does not look at elevation; callers skip it when the sun is down.
func Factor(pos Position, direction, leftShadow, rightShadow float64, preferShadow bool, maxFactor float64) float64 {
	bearing := to180(pos.AzimuthDegrees())
	angle := orthoAngle(direction, bearing)
	// the rays travel away from the sun
	side := raySide(direction, graph.InvertDirection(bearing))

	if side == 0 || angle <= minSunAngle {
		if preferShadow {
			return maxFactor
		}
		return 1
	}

	occlusion := rightShadow
	if side > 0 {
		occlusion = leftShadow
	}
	shade := occlusion * math.Min((angle-minSunAngle)/(maxSunAngle-minSunAngle), 1)

	if preferShadow {
		return maxFactor - (maxFactor-1)*shade
	}
	return 1 + (maxFactor-1)*shade
}
