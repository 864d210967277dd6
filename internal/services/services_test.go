package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/geo"
	"sunnyway/internal/graph"
	"sunnyway/internal/navigator"
)

// Corners of a ~110 m by ~110 m block, ids 0..3 in this order.
var (
	cornerSW = entities.NewGeoPoint(59.9000, 30.3000)
	cornerSE = entities.NewGeoPoint(59.9000, 30.3020)
	cornerNE = entities.NewGeoPoint(59.9010, 30.3020)
	cornerNW = entities.NewGeoPoint(59.9010, 30.3000)
)

func squareGraph(t testing.TB) (*graph.Graph, *geo.KdTree) {
	t.Helper()
	g, index, err := graph.Build([]graph.Segment{
		{Start: cornerSW, End: cornerSE, Distance: 100, Direction: 90, LeftShadow: 1},
		{Start: cornerSE, End: cornerNE, Distance: 100, Direction: 0},
		{Start: cornerNE, End: cornerNW, Distance: 100, Direction: -90, RightShadow: 0.5},
		{Start: cornerNW, End: cornerSW, Distance: 100, Direction: -180},
	})
	require.NoError(t, err)
	return g, index
}

// stubPool records requests and answers with a fixed path or error.
type stubPool struct {
	mu       sync.Mutex
	requests []navigator.Request
	path     []entities.NavigationEdge
	err      error
}

func (p *stubPool) EnqueueAndJoin(_ context.Context, req navigator.Request) ([]entities.NavigationEdge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	return p.path, p.err
}

func (p *stubPool) calls() []navigator.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]navigator.Request(nil), p.requests...)
}

var errStub = errors.New("stub failure")
