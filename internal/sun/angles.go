package sun

import (
	"math"

	"sunnyway/internal/graph"
)

// angleDelta returns the signed difference secondary - main for bearings in
// [-180, 180], folded into (-180, 180). Exactly opposite bearings give 0.
func angleDelta(main, secondary float64) float64 {
	d := secondary - main
	if d >= 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	if d == 180 || d == -180 {
		return 0
	}
	return d
}

// orthoAngle is the angle between a street and the sun's bearing, folded into
// [0, 90]. A street has no facing, so direction and its inverse are
// equivalent.
func orthoAngle(direction, sunBearing float64) float64 {
	fold := func(a float64) float64 {
		a = math.Abs(a)
		if a > 90 {
			a = 180 - a
		}
		return a
	}
	return math.Min(
		fold(angleDelta(sunBearing, direction)),
		fold(angleDelta(sunBearing, graph.InvertDirection(direction))),
	)
}

// raySide returns 1 when a ray with bearing rayBearing crosses the street
// arriving from its left, -1 from its right and 0 when parallel.
func raySide(direction, rayBearing float64) float64 {
	d := angleDelta(direction, rayBearing)
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

// to180 maps a bearing in [0, 360) to [-180, 180).
func to180(a float64) float64 {
	if a < 180 {
		return a
	}
	return a - 360
}
