package navigator

import (
	"sunnyway/internal/domain/entities"
	"sunnyway/internal/geo"
	"sunnyway/internal/graph"
)

// DistanceNavigator finds the shortest walk, penalizing edges marked avoid.
type DistanceNavigator struct {
	g            *graph.Graph
	bounds       geo.BoundFactory
	avoidPenalty float64
	s            *search
}

// NewDistanceNavigator creates a navigator over g. A non-positive
// avoidPenalty selects DefaultAvoidPenalty.
func NewDistanceNavigator(g *graph.Graph, bounds geo.BoundFactory, avoidPenalty float64) *DistanceNavigator {
	if avoidPenalty <= 0 {
		avoidPenalty = DefaultAvoidPenalty
	}
	return &DistanceNavigator{
		g:            g,
		bounds:       bounds,
		avoidPenalty: avoidPenalty,
		s:            newSearch(g),
	}
}

func (n *DistanceNavigator) weight(e *graph.Edge) float64 {
	if e.Avoid {
		return e.Distance * n.avoidPenalty
	}
	return e.Distance
}

// Navigate returns the shortest path between req.From and req.To. Departure
// and the shadow preferences are ignored. Every edge carries factor 1.
func (n *DistanceNavigator) Navigate(req Request) ([]entities.NavigationEdge, error) {
	if err := checkRequest(n.g, req); err != nil {
		return nil, err
	}
	if req.From == req.To {
		return nil, nil
	}

	bound := n.bounds.Create(n.g.Point(req.From), n.g.Point(req.To))
	if !n.s.run(req.From, req.To, bound, n.weight) {
		return nil, nil
	}

	edges := n.s.path(req.To)
	result := make([]entities.NavigationEdge, len(edges))
	for i, e := range edges {
		result[i] = n.g.NavigationEdge(e, 1)
	}
	return result, nil
}
