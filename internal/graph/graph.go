// Package graph holds the immutable pedestrian street graph: vertices at
// street intersections, two directed edges per street segment, and the
// builder and CSV loader that produce it.
//
// Vertex and edge ids are contiguous, starting at zero, so per-search state
// can live in plain slices indexed by id instead of maps.
package graph

import (
	"github.com/paulmach/orb"

	"sunnyway/internal/domain/entities"
	"sunnyway/pkg/utils"
)

// Vertex is a street intersection. Edges lists only the edges that start
// here.
type Vertex struct {
	ID    int
	Point entities.GeoPoint
	Edges []*Edge
}

// Edge is one direction of a street segment.
//
// Direction is the compass bearing of travel in degrees, in [-180, 180).
// LeftShadow and RightShadow are the building occlusion on either side of the
// street relative to that direction of travel, in [0, 1].
type Edge struct {
	ID          int
	From        int
	To          int
	Distance    float64
	Direction   float64
	LeftShadow  float64
	RightShadow float64
	Avoid       bool
}

// SegmentKey identifies a street segment regardless of the direction it is
// traversed in. The forward and reverse edge of a segment share a key.
type SegmentKey struct {
	lo, hi int
}

// SegmentKey returns the direction-independent key of the edge's segment.
func (e *Edge) SegmentKey() SegmentKey {
	if e.From < e.To {
		return SegmentKey{lo: e.From, hi: e.To}
	}
	return SegmentKey{lo: e.To, hi: e.From}
}

// SameSegment reports whether a and b connect the same pair of vertices, in
// either direction. It is the equality used to de-duplicate edges for
// display; everywhere else edges are identified by ID.
func SameSegment(a, b *Edge) bool {
	return a.SegmentKey() == b.SegmentKey()
}

// Graph is the read-only street network shared by every navigator.
//
// Go Learning Note — Sharing Without Locks:
// Nothing in Graph is modified after Build returns. Any number of goroutines
// may read it at once; the race detector only complains about concurrent
// access when at least one side writes.
type Graph struct {
	vertices []Vertex
	edges    []Edge
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of directed edges, twice the segment count.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the vertex with the given id. The id must be in range.
func (g *Graph) Vertex(id int) *Vertex { return &g.vertices[id] }

// Edge returns the edge with the given id. The id must be in range.
func (g *Graph) Edge(id int) *Edge { return &g.edges[id] }

// Point returns the position of a vertex.
func (g *Graph) Point(id int) entities.GeoPoint { return g.vertices[id].Point }

// HasVertex reports whether id names a vertex of the graph.
func (g *Graph) HasVertex(id int) bool { return id >= 0 && id < len(g.vertices) }

// Bounds returns the smallest rectangle holding every vertex. An empty graph
// yields the zero bound.
func (g *Graph) Bounds() orb.Bound {
	if len(g.vertices) == 0 {
		return orb.Bound{}
	}
	first := g.vertices[0].Point
	b := orb.Bound{Min: orb.Point{first.Lon, first.Lat}, Max: orb.Point{first.Lon, first.Lat}}
	for _, v := range g.vertices[1:] {
		b = b.Extend(orb.Point{v.Point.Lon, v.Point.Lat})
	}
	return b
}

// NavigationEdge converts an edge into its route representation with the
// given exposure factor.
func (g *Graph) NavigationEdge(e *Edge, factor float64) entities.NavigationEdge {
	return entities.NavigationEdge{
		EdgeID:       e.ID,
		FromVertexID: e.From,
		ToVertexID:   e.To,
		From:         g.vertices[e.From].Point,
		To:           g.vertices[e.To].Point,
		Distance:     e.Distance,
		Direction:    e.Direction,
		LeftShadow:   e.LeftShadow,
		RightShadow:  e.RightShadow,
		TraverseTime: utils.TraverseTime(e.Distance),
		Factor:       factor,
	}
}
