package services

import (
	"github.com/paulmach/orb"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/graph"
)

// ServiceAreaService describes the rectangle the street graph covers. The
// graph never changes, so both answers are computed once.
type ServiceAreaService struct {
	area   []entities.GeoPoint
	center entities.GeoPoint
}

func NewServiceAreaService(g *graph.Graph) *ServiceAreaService {
	bound := g.Bounds()

	ring := bound.ToRing()
	area := make([]entities.GeoPoint, len(ring))
	for i, p := range ring {
		area[i] = fromOrb(p)
	}

	return &ServiceAreaService{
		area:   area,
		center: fromOrb(bound.Center()),
	}
}

func fromOrb(p orb.Point) entities.GeoPoint {
	return entities.NewGeoPoint(p.Lat(), p.Lon())
}

// Area returns the closed ring of the service rectangle: four corners and
// the first corner repeated.
func (s *ServiceAreaService) Area() []entities.GeoPoint { return s.area }

// Center returns the middle of the service rectangle.
func (s *ServiceAreaService) Center() entities.GeoPoint { return s.center }
