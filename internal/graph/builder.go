package graph

import (
	"errors"
	"fmt"
	"math"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/geo"
)

var (
	ErrInvalidSegment = errors.New("graph: invalid segment")
	ErrMissingColumn  = errors.New("graph: missing csv column")
	ErrMalformedRow   = errors.New("graph: malformed csv row")
)

// Segment is one undirected street segment as produced by the data
// pipeline. Direction and the shadow sides describe travel from Start to End.
type Segment struct {
	Start       entities.GeoPoint
	End         entities.GeoPoint
	LeftShadow  float64
	RightShadow float64
	Distance    float64
	Direction   float64
	Avoid       bool
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the segment's attributes. A direction of exactly 180 is
// accepted; the builder stores it as -180.
func (s Segment) Validate() error {
	switch {
	case !finite(s.Start.Lat) || !finite(s.Start.Lon) || !s.Start.Valid():
		return fmt.Errorf("%w: start %v out of range", ErrInvalidSegment, s.Start)
	case !finite(s.End.Lat) || !finite(s.End.Lon) || !s.End.Valid():
		return fmt.Errorf("%w: end %v out of range", ErrInvalidSegment, s.End)
	case !finite(s.Distance) || s.Distance < 0:
		return fmt.Errorf("%w: distance %v", ErrInvalidSegment, s.Distance)
	case !finite(s.Direction) || s.Direction < -180 || s.Direction > 180:
		return fmt.Errorf("%w: direction %v outside [-180, 180)", ErrInvalidSegment, s.Direction)
	case !(s.LeftShadow >= 0 && s.LeftShadow <= 1):
		return fmt.Errorf("%w: left shadow %v outside [0, 1]", ErrInvalidSegment, s.LeftShadow)
	case !(s.RightShadow >= 0 && s.RightShadow <= 1):
		return fmt.Errorf("%w: right shadow %v outside [0, 1]", ErrInvalidSegment, s.RightShadow)
	}
	return nil
}

// InvertDirection returns the opposite bearing, keeping it in [-180, 180).
func InvertDirection(direction float64) float64 {
	if direction < 0 {
		return direction + 180
	}
	return direction - 180
}

// Builder accumulates segments into a Graph. Vertices are merged when their
// coordinates are exactly equal and numbered in first-seen order. A Builder
// must not be reused after Build.
type Builder struct {
	index    map[entities.GeoPoint]int
	vertices []entities.GeoPoint
	outgoing [][]int
	edges    []Edge
}

// NewBuilder returns a Builder sized for roughly capacity segments.
func NewBuilder(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{
		index:    make(map[entities.GeoPoint]int, capacity),
		vertices: make([]entities.GeoPoint, 0, capacity),
		outgoing: make([][]int, 0, capacity),
		edges:    make([]Edge, 0, 2*capacity),
	}
}

func (b *Builder) vertexID(p entities.GeoPoint) int {
	if id, ok := b.index[p]; ok {
		return id
	}
	id := len(b.vertices)
	b.index[p] = id
	b.vertices = append(b.vertices, p)
	b.outgoing = append(b.outgoing, nil)
	return id
}

// AddSegment validates s and adds its forward edge, id 2k for the k-th
// segment, and reverse edge, id 2k+1. The reverse edge points the other way
// and has its shadow sides swapped so each still describes the same side of
// the street.
func (b *Builder) AddSegment(s Segment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	direction := s.Direction
	if direction == 180 {
		direction = -180
	}

	from := b.vertexID(s.Start)
	to := b.vertexID(s.End)

	forward := Edge{
		ID:          len(b.edges),
		From:        from,
		To:          to,
		Distance:    s.Distance,
		Direction:   direction,
		LeftShadow:  s.LeftShadow,
		RightShadow: s.RightShadow,
		Avoid:       s.Avoid,
	}
	reverse := Edge{
		ID:          forward.ID + 1,
		From:        to,
		To:          from,
		Distance:    s.Distance,
		Direction:   InvertDirection(direction),
		LeftShadow:  s.RightShadow,
		RightShadow: s.LeftShadow,
		Avoid:       s.Avoid,
	}
	b.edges = append(b.edges, forward, reverse)
	b.outgoing[from] = append(b.outgoing[from], forward.ID)
	b.outgoing[to] = append(b.outgoing[to], reverse.ID)
	return nil
}

// Build freezes the accumulated segments into a Graph and a spatial index
// over its vertices.
func (b *Builder) Build() (*Graph, *geo.KdTree) {
	g := &Graph{
		vertices: make([]Vertex, len(b.vertices)),
		edges:    b.edges,
	}
	entries := make([]geo.Entry, len(b.vertices))
	for id, p := range b.vertices {
		edges := make([]*Edge, len(b.outgoing[id]))
		for i, edgeID := range b.outgoing[id] {
			edges[i] = &g.edges[edgeID]
		}
		g.vertices[id] = Vertex{ID: id, Point: p, Edges: edges}
		entries[id] = geo.Entry{ID: id, Point: p}
	}
	return g, geo.BuildKdTree(entries)
}

// Build constructs a graph and its spatial index from segments, stopping at
// the first invalid one.
func Build(segments []Segment) (*Graph, *geo.KdTree, error) {
	b := NewBuilder(len(segments))
	for i, s := range segments {
		if err := b.AddSegment(s); err != nil {
			return nil, nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	g, tree := b.Build()
	return g, tree, nil
}
