// Package entities defines the core domain values of the routing service.
// These structs describe points, traversed edges and route results and
// live in the innermost layer of the architecture: they have no dependencies
// on the graph, the HTTP layer or the worker pools.
//
// Go Learning Note — "internal/" directory:
// Packages under internal/ cannot be imported by code outside this module. Go
// enforces this at the compiler level, which keeps the wire shapes below free
// to change together with the handlers that serialize them.
package entities

import "fmt"

// GeoPoint is a latitude/longitude pair in degrees.
//
// Go Learning Note — Value Types as Map Keys:
// GeoPoint holds only two float64 fields, so it is comparable with == and can
// be used directly as a map key. The graph builder relies on this to merge
// segment endpoints that share exactly the same coordinates. Two points are
// equal only when both coordinates are bit-for-bit equal; no tolerance is
// applied.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewGeoPoint creates a GeoPoint value from latitude and longitude.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{
		Lat: lat,
		Lon: lon,
	}
}

// Valid reports whether the point lies inside the WGS84 coordinate range.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}
