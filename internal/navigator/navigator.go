// Package navigator implements the route searches run by the worker pools:
// a distance-optimal Dijkstra and a time-dependent shadow-aware search that
// re-plans as the sun moves.
//
// A navigator owns per-vertex scratch arrays sized to the graph and reuses
// them between searches, so it must only ever be used by one goroutine at a
// time. The pool package gives each worker its own instance.
package navigator

import (
	"errors"
	"fmt"
	"time"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/graph"
)

var (
	ErrVertexOutOfRange = errors.New("navigator: vertex id out of range")
	ErrReplanLimit      = errors.New("navigator: re-planning did not reach the destination")
)

// DefaultAvoidPenalty multiplies the length of edges marked avoid in the
// distance search.
const DefaultAvoidPenalty = 1000.0

// Request is one route search between two vertex ids.
type Request struct {
	From      int
	To        int
	Departure time.Time

	PreferShadow bool
	// MaxFactor caps the exposure multiplier. Zero selects the navigator's
	// default.
	MaxFactor float64
}

// Navigator computes a route for a request. An empty path with a nil error
// means the destination is unreachable.
//
// Go Learning Note — Small Interfaces:
// The pool only ever needs this one method, so that is all the interface
// declares. Tests substitute a fake that blocks or panics on demand without
// touching a graph at all.
type Navigator interface {
	Navigate(req Request) ([]entities.NavigationEdge, error)
}

// Factory makes a fresh Navigator; pools call it once per worker.
type Factory func() Navigator

func checkRequest(g *graph.Graph, req Request) error {
	if !g.HasVertex(req.From) {
		return fmt.Errorf("%w: from %d, graph has %d vertices", ErrVertexOutOfRange, req.From, g.VertexCount())
	}
	if !g.HasVertex(req.To) {
		return fmt.Errorf("%w: to %d, graph has %d vertices", ErrVertexOutOfRange, req.To, g.VertexCount())
	}
	return nil
}
