package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunnyway/internal/domain/entities"
)

func segment(aLat, aLon, bLat, bLon, distance, direction float64) Segment {
	return Segment{
		Start:     entities.NewGeoPoint(aLat, aLon),
		End:       entities.NewGeoPoint(bLat, bLon),
		Distance:  distance,
		Direction: direction,
	}
}

func TestBuild_MergesVerticesAndNumbersEdges(t *testing.T) {
	// a path a-b-c where b is shared by both segments
	g, tree, err := Build([]Segment{
		segment(59.90, 30.30, 59.90, 30.31, 100, 90),
		segment(59.90, 30.31, 59.91, 30.31, 150, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 3, tree.Len())

	for id := 0; id < g.VertexCount(); id++ {
		assert.Equal(t, id, g.Vertex(id).ID)
	}
	assert.Equal(t, entities.NewGeoPoint(59.90, 30.30), g.Point(0))
	assert.Equal(t, entities.NewGeoPoint(59.90, 30.31), g.Point(1))
	assert.Equal(t, entities.NewGeoPoint(59.91, 30.31), g.Point(2))

	// segment k yields edges 2k and 2k+1
	assert.Equal(t, 0, g.Edge(0).From)
	assert.Equal(t, 1, g.Edge(0).To)
	assert.Equal(t, 1, g.Edge(1).From)
	assert.Equal(t, 0, g.Edge(1).To)
	assert.Equal(t, 1, g.Edge(2).From)
	assert.Equal(t, 2, g.Edge(2).To)

	// outgoing lists only
	require.Len(t, g.Vertex(1).Edges, 2)
	for _, e := range g.Vertex(1).Edges {
		assert.Equal(t, 1, e.From)
	}
	for id := 0; id < g.EdgeCount(); id++ {
		assert.Equal(t, id, g.Edge(id).ID)
	}
	assert.Same(t, g.Edge(2), g.Vertex(1).Edges[1])
}

func TestBuild_ReverseEdge(t *testing.T) {
	tests := []struct {
		name        string
		direction   float64
		wantForward float64
		wantReverse float64
	}{
		{name: "East", direction: 90, wantForward: 90, wantReverse: -90},
		{name: "North", direction: 0, wantForward: 0, wantReverse: -180},
		{name: "South-west", direction: -135, wantForward: -135, wantReverse: 45},
		{name: "South as 180", direction: 180, wantForward: -180, wantReverse: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := segment(59.9, 30.3, 59.91, 30.31, 42, tt.direction)
			s.LeftShadow = 0.2
			s.RightShadow = 0.7
			s.Avoid = true

			g, _, err := Build([]Segment{s})
			require.NoError(t, err)

			fwd, rev := g.Edge(0), g.Edge(1)
			assert.Equal(t, tt.wantForward, fwd.Direction)
			assert.Equal(t, tt.wantReverse, rev.Direction)

			assert.Equal(t, 0.2, fwd.LeftShadow)
			assert.Equal(t, 0.7, fwd.RightShadow)
			assert.Equal(t, 0.7, rev.LeftShadow)
			assert.Equal(t, 0.2, rev.RightShadow)

			assert.Equal(t, fwd.Distance, rev.Distance)
			assert.True(t, rev.Avoid)
			assert.True(t, SameSegment(fwd, rev))
			assert.NotEqual(t, fwd.ID, rev.ID)
		})
	}
}

func TestSameSegment(t *testing.T) {
	g, _, err := Build([]Segment{
		segment(0, 0, 0, 1, 1, 90),
		segment(0, 1, 1, 1, 1, 0),
	})
	require.NoError(t, err)

	assert.True(t, SameSegment(g.Edge(0), g.Edge(1)))
	assert.False(t, SameSegment(g.Edge(0), g.Edge(2)))
	assert.Equal(t, g.Edge(2).SegmentKey(), g.Edge(3).SegmentKey())
	assert.NotEqual(t, g.Edge(1).SegmentKey(), g.Edge(3).SegmentKey())
}

func TestBuilder_AddSegmentValidation(t *testing.T) {
	valid := segment(59.9, 30.3, 59.91, 30.31, 10, 45)

	tests := []struct {
		name   string
		mutate func(s *Segment)
	}{
		{name: "Negative distance", mutate: func(s *Segment) { s.Distance = -1 }},
		{name: "NaN distance", mutate: func(s *Segment) { s.Distance = math.NaN() }},
		{name: "Infinite distance", mutate: func(s *Segment) { s.Distance = math.Inf(1) }},
		{name: "Direction too small", mutate: func(s *Segment) { s.Direction = -180.5 }},
		{name: "Direction too large", mutate: func(s *Segment) { s.Direction = 181 }},
		{name: "Left shadow above one", mutate: func(s *Segment) { s.LeftShadow = 1.1 }},
		{name: "Right shadow negative", mutate: func(s *Segment) { s.RightShadow = -0.1 }},
		{name: "Shadow NaN", mutate: func(s *Segment) { s.LeftShadow = math.NaN() }},
		{name: "Latitude out of range", mutate: func(s *Segment) { s.Start.Lat = 91 }},
		{name: "Longitude NaN", mutate: func(s *Segment) { s.End.Lon = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			b := NewBuilder(1)
			err := b.AddSegment(s)
			assert.ErrorIs(t, err, ErrInvalidSegment)

			g, _ := b.Build()
			assert.Equal(t, 0, g.VertexCount(), "rejected segment must not add vertices")
		})
	}

	b := NewBuilder(0)
	require.NoError(t, b.AddSegment(valid))
}

func TestBuild_ReportsSegmentIndex(t *testing.T) {
	bad := segment(0, 0, 0, 1, -5, 0)

	_, _, err := Build([]Segment{segment(0, 0, 0, 1, 1, 90), bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSegment)
	assert.Contains(t, err.Error(), "segment 1")
}

func TestGraph_Bounds(t *testing.T) {
	g, _, err := Build([]Segment{
		segment(59.90, 30.30, 59.95, 30.25, 1, 0),
		segment(59.95, 30.25, 59.88, 30.40, 1, 0),
	})
	require.NoError(t, err)

	b := g.Bounds()
	assert.Equal(t, 59.88, b.Min.Lat())
	assert.Equal(t, 30.25, b.Min.Lon())
	assert.Equal(t, 59.95, b.Max.Lat())
	assert.Equal(t, 30.40, b.Max.Lon())

	empty, _, err := Build(nil)
	require.NoError(t, err)
	assert.True(t, empty.Bounds().IsZero())
	assert.False(t, empty.HasVertex(0))
}

func TestGraph_NavigationEdge(t *testing.T) {
	g, _, err := Build([]Segment{{
		Start:       entities.NewGeoPoint(59.9, 30.3),
		End:         entities.NewGeoPoint(59.9, 30.301),
		Distance:    90,
		Direction:   90,
		LeftShadow:  0.5,
		RightShadow: 0.25,
	}})
	require.NoError(t, err)

	ne := g.NavigationEdge(g.Edge(1), 3)

	assert.Equal(t, 1, ne.EdgeID)
	assert.Equal(t, 1, ne.FromVertexID)
	assert.Equal(t, 0, ne.ToVertexID)
	assert.Equal(t, g.Point(1), ne.From)
	assert.Equal(t, g.Point(0), ne.To)
	assert.Equal(t, -90.0, ne.Direction)
	assert.Equal(t, 0.25, ne.LeftShadow)
	assert.InDelta(t, 100_000, ne.TraverseTime.Milliseconds(), 1)
	assert.Equal(t, 3.0, ne.Factor)
}
