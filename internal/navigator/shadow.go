package navigator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/geo"
	"sunnyway/internal/graph"
	"sunnyway/internal/sun"
)

// ShadowConfig tunes the shadow search.
type ShadowConfig struct {
	// Window is how far ahead one static plan is trusted before the sun is
	// recomputed.
	Window time.Duration

	// UTCOffsetHours is the zone whose clock feeds the solar model.
	UTCOffsetHours int

	// DefaultMaxFactor applies to requests that leave MaxFactor unset.
	DefaultMaxFactor float64

	// MaxReplans bounds the number of static plans per request. Zero means
	// the vertex count of the graph.
	MaxReplans int
}

// DefaultShadowConfig returns the settings used in production.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		Window:           15 * time.Minute,
		UTCOffsetHours:   3,
		DefaultMaxFactor: sun.DefaultMaxFactor,
	}
}

// ShadowNavigator plans a route whose cost is length times solar exposure.
//
// The sun moves while the pedestrian walks, so a single Dijkstra run is only
// right near the departure time. The navigator plans statically with the sun
// as it stands at the current clock, commits the part of that plan walked
// within Window, moves the start and the clock there and plans again until
// the destination is reached.
type ShadowNavigator struct {
	g      *graph.Graph
	bounds geo.BoundFactory
	cfg    ShadowConfig
	s      *search
	cache  *sun.CostCache
	logger *zap.Logger
}

// NewShadowNavigator creates a navigator over g.
func NewShadowNavigator(g *graph.Graph, bounds geo.BoundFactory, cfg ShadowConfig, logger *zap.Logger) *ShadowNavigator {
	if cfg.Window <= 0 {
		cfg.Window = DefaultShadowConfig().Window
	}
	if cfg.DefaultMaxFactor < 1 {
		cfg.DefaultMaxFactor = sun.DefaultMaxFactor
	}
	if cfg.MaxReplans <= 0 {
		cfg.MaxReplans = g.VertexCount()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShadowNavigator{
		g:      g,
		bounds: bounds,
		cfg:    cfg,
		s:      newSearch(g),
		cache:  sun.NewCostCache(g.EdgeCount()),
		logger: logger,
	}
}

// solve runs one static plan from..to with the sun at clock. The sun is
// taken at the destination; across a walkable distance the difference is
// negligible.
func (n *ShadowNavigator) solve(from, to int, clock time.Time, preferShadow bool, maxFactor float64) ([]*graph.Edge, bool) {
	dest := n.g.Point(to)
	n.cache.Reset(sun.Calculate(dest.Lat, dest.Lon, clock, n.cfg.UTCOffsetHours), preferShadow, maxFactor)

	bound := n.bounds.Create(n.g.Point(from), dest)
	if !n.s.run(from, to, bound, n.cache.Cost) {
		return nil, false
	}
	return n.s.path(to), true
}

// Navigate returns the exposure-weighted route. Each edge carries the factor
// of the plan that committed it.
func (n *ShadowNavigator) Navigate(req Request) ([]entities.NavigationEdge, error) {
	if err := checkRequest(n.g, req); err != nil {
		return nil, err
	}
	if req.From == req.To {
		return nil, nil
	}
	maxFactor := req.MaxFactor
	if maxFactor <= 0 {
		maxFactor = n.cfg.DefaultMaxFactor
	}

	var route []entities.NavigationEdge
	clock := req.Departure
	cur := req.From

	for plans := 1; ; plans++ {
		if plans > n.cfg.MaxReplans {
			return nil, fmt.Errorf("%w: %d plans from %d to %d", ErrReplanLimit, n.cfg.MaxReplans, req.From, req.To)
		}

		edges, ok := n.solve(cur, req.To, clock, req.PreferShadow, maxFactor)
		if !ok {
			return nil, nil
		}

		// Walk the plan until an edge ends past the window. That edge is
		// still committed.
		deadline := clock.Add(n.cfg.Window)
		for _, e := range edges {
			step := n.g.NavigationEdge(e, n.cache.Factor(e))
			route = append(route, step)
			clock = clock.Add(step.TraverseTime)
			cur = e.To
			if clock.After(deadline) {
				break
			}
		}

		if cur == req.To {
			n.logger.Debug("shadow route planned",
				zap.Int("from", req.From),
				zap.Int("to", req.To),
				zap.Int("plans", plans),
				zap.Int("edges", len(route)),
			)
			return route, nil
		}
	}
}
