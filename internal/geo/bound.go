package geo

import (
	"math"

	"github.com/paulmach/orb"

	"sunnyway/internal/domain/entities"
)

// Bound is a geographic rectangle restricting which vertices a search may
// enter.
type Bound struct {
	rect orb.Bound
}

// NewBound returns the rectangle spanning the two corners in any order.
func NewBound(a, b entities.GeoPoint) Bound {
	return Bound{rect: orb.Bound{
		Min: orb.Point{math.Min(a.Lon, b.Lon), math.Min(a.Lat, b.Lat)},
		Max: orb.Point{math.Max(a.Lon, b.Lon), math.Max(a.Lat, b.Lat)},
	}}
}

// Contains reports whether point lies inside the rectangle, edges included.
func (b Bound) Contains(point entities.GeoPoint) bool {
	return b.rect.Contains(orb.Point{point.Lon, point.Lat})
}

// Min returns the south-west corner.
func (b Bound) Min() entities.GeoPoint {
	return entities.NewGeoPoint(b.rect.Min.Lat(), b.rect.Min.Lon())
}

// Max returns the north-east corner.
func (b Bound) Max() entities.GeoPoint {
	return entities.NewGeoPoint(b.rect.Max.Lat(), b.rect.Max.Lon())
}

// Orb exposes the underlying orb rectangle.
func (b Bound) Orb() orb.Bound { return b.rect }

// BoundFactory derives a search rectangle from a route's two endpoints. Each
// axis is widened on both sides by max(delta*OffsetFactor, MinOffset), where
// delta is the endpoints' separation on that axis in degrees.
type BoundFactory struct {
	MinOffset    float64
	OffsetFactor float64
}

// NewBoundFactory creates a BoundFactory.
func NewBoundFactory(minOffset, offsetFactor float64) BoundFactory {
	return BoundFactory{MinOffset: minOffset, OffsetFactor: offsetFactor}
}

// Create returns the expanded rectangle around a and b.
func (f BoundFactory) Create(a, b entities.GeoPoint) Bound {
	offsetLat := math.Max(math.Abs(a.Lat-b.Lat)*f.OffsetFactor, f.MinOffset)
	offsetLon := math.Max(math.Abs(a.Lon-b.Lon)*f.OffsetFactor, f.MinOffset)

	return Bound{rect: orb.Bound{
		Min: orb.Point{math.Min(a.Lon, b.Lon) - offsetLon, math.Min(a.Lat, b.Lat) - offsetLat},
		Max: orb.Point{math.Max(a.Lon, b.Lon) + offsetLon, math.Max(a.Lat, b.Lat) + offsetLat},
	}}
}
