package services

import (
	"context"
	"errors"
	"fmt"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/geo"
	"sunnyway/internal/graph"
	"sunnyway/pkg/utils"
)

var (
	ErrPointNotOnNetwork = errors.New("point is not on the street network")
	ErrInvalidPoint      = errors.New("coordinates out of range")
	ErrInvalidRadius     = errors.New("radius out of range")
)

// LocationService snaps coordinates onto graph vertices. It only reads the
// graph and its KD-tree, so one instance serves every request concurrently.
type LocationService struct {
	graph *graph.Graph
	index *geo.KdTree
}

func NewLocationService(g *graph.Graph, index *geo.KdTree) *LocationService {
	return &LocationService{
		graph: g,
		index: index,
	}
}

// Locate returns the vertex nearest to point within maxDistance meters. A
// miss is ErrPointNotOnNetwork, never a default vertex.
func (s *LocationService) Locate(ctx context.Context, point entities.GeoPoint, maxDistance float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !point.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPoint, point)
	}
	if maxDistance < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRadius, maxDistance)
	}

	id, ok := s.index.Nearest(point, maxDistance)
	if !ok {
		return 0, fmt.Errorf("%w: nothing within %.0f m of %v", ErrPointNotOnNetwork, maxDistance, point)
	}
	return id, nil
}

// SnapDistance is how far, in meters, point lies from the vertex it was
// snapped to.
func (s *LocationService) SnapDistance(point entities.GeoPoint, vertexID int) float64 {
	v := s.graph.Point(vertexID)
	return utils.HaversineMeters(point.Lat, point.Lon, v.Lat, v.Lon)
}

// LocateAll returns every vertex within radius meters of point.
func (s *LocationService) LocateAll(ctx context.Context, point entities.GeoPoint, radius float64) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !point.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, point)
	}

	ids, err := s.index.AllNearest(point, radius)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, err)
	}
	return ids, nil
}
