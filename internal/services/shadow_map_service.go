package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/graph"
	"sunnyway/internal/sun"
)

// ShadowMapRequest asks for the exposure of every street near Center at
// Time.
type ShadowMapRequest struct {
	Center       entities.GeoPoint
	Radius       float64
	Time         time.Time
	PreferShadow bool
	MaxFactor    float64
}

// ShadowMapService annotates the streets around a point with their current
// exposure factor, for the map overlay.
//
// Go Learning Note — sync.Pool:
// A CostCache holds two edge-sized slices. Allocating one per request would
// put megabytes of garbage on the heap for a city graph, while keeping a
// single shared one would need a lock. sync.Pool hands each concurrent
// request its own cache and recycles them between requests.
type ShadowMapService struct {
	g                *graph.Graph
	locator          *LocationService
	utcOffsetHours   int
	defaultMaxFactor float64
	maxRadius        float64
	caches           sync.Pool
	logger           *zap.Logger
}

func NewShadowMapService(
	g *graph.Graph,
	locator *LocationService,
	utcOffsetHours int,
	defaultMaxFactor float64,
	maxRadius float64,
	logger *zap.Logger,
) *ShadowMapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultMaxFactor < 1 {
		defaultMaxFactor = sun.DefaultMaxFactor
	}
	edgeCount := g.EdgeCount()
	return &ShadowMapService{
		g:                g,
		locator:          locator,
		utcOffsetHours:   utcOffsetHours,
		defaultMaxFactor: defaultMaxFactor,
		maxRadius:        maxRadius,
		caches: sync.Pool{
			New: func() any { return sun.NewCostCache(edgeCount) },
		},
		logger: logger,
	}
}

// Sun returns the solar position at center for t.
func (s *ShadowMapService) Sun(center entities.GeoPoint, t time.Time) sun.Position {
	return sun.Calculate(center.Lat, center.Lon, t, s.utcOffsetHours)
}

// ShadowMap returns each street segment with an endpoint within the radius,
// once, annotated with its exposure factor. Every factor is 1 while the sun
// is down.
func (s *ShadowMapService) ShadowMap(ctx context.Context, req ShadowMapRequest) ([]entities.EdgeWithCost, error) {
	if s.maxRadius > 0 && req.Radius > s.maxRadius {
		return nil, fmt.Errorf("%w: %.0f m exceeds %.0f m", ErrInvalidRadius, req.Radius, s.maxRadius)
	}
	maxFactor := req.MaxFactor
	switch {
	case math.IsNaN(maxFactor) || (maxFactor != 0 && maxFactor < 1):
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMaxFactor, maxFactor)
	case maxFactor == 0:
		maxFactor = s.defaultMaxFactor
	}

	start := time.Now()
	vertices, err := s.locator.LocateAll(ctx, req.Center, req.Radius)
	if err != nil {
		return nil, err
	}

	t := req.Time
	if t.IsZero() {
		t = time.Now()
	}

	cache := s.caches.Get().(*sun.CostCache)
	defer s.caches.Put(cache)
	cache.Reset(s.Sun(req.Center, t), req.PreferShadow, maxFactor)

	seen := make(map[graph.SegmentKey]struct{})
	result := make([]entities.EdgeWithCost, 0, len(vertices))
	for _, id := range vertices {
		for _, e := range s.g.Vertex(id).Edges {
			key := e.SegmentKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, entities.EdgeWithCost{
				From:   s.g.Point(e.From),
				To:     s.g.Point(e.To),
				Factor: cache.Factor(e),
			})
		}
	}

	s.logger.Debug("built shadow map",
		zap.Int("vertices", len(vertices)),
		zap.Int("edges", len(result)),
		zap.Bool("sun_up", cache.SunUp()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
