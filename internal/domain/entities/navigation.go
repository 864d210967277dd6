package entities

import (
	"fmt"
	"strings"
	"time"
)

// Algorithm selects which navigator pool serves a request.
//
// Go Learning Note — Typed String Enums:
// Go has no enum keyword. A named string type plus constants keeps the values
// readable in JSON while still letting the compiler catch a plain string
// passed where an Algorithm is expected.
type Algorithm string

const (
	AlgorithmDistance Algorithm = "distance"
	AlgorithmShadow   Algorithm = "shadow"
)

// ParseAlgorithm converts a user supplied selector, case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AlgorithmDistance):
		return AlgorithmDistance, nil
	case string(AlgorithmShadow):
		return AlgorithmShadow, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q", s)
	}
}

// NavigationEdge is one edge of a computed route, in travel order.
type NavigationEdge struct {
	EdgeID       int           `json:"edgeId"`
	FromVertexID int           `json:"fromVertexId"`
	ToVertexID   int           `json:"toVertexId"`
	From         GeoPoint      `json:"fromPoint"`
	To           GeoPoint      `json:"toPoint"`
	Distance     float64       `json:"distance"`
	Direction    float64       `json:"direction"`
	LeftShadow   float64       `json:"leftShadow"`
	RightShadow  float64       `json:"rightShadow"`
	TraverseTime time.Duration `json:"time"`
	Factor       float64       `json:"factor"`
}

// NavigationResult is a route together with the time spent computing it.
// An empty Path means the target was unreachable.
type NavigationResult struct {
	Path        []NavigationEdge `json:"path"`
	Distance    float64          `json:"distance"`
	Duration    time.Duration    `json:"duration"`
	ComputeTime time.Duration    `json:"computeTime"`
}

// NewNavigationResult sums distance and traverse time over the path.
func NewNavigationResult(path []NavigationEdge, computeTime time.Duration) *NavigationResult {
	result := &NavigationResult{
		Path:        path,
		ComputeTime: computeTime,
	}
	for _, edge := range path {
		result.Distance += edge.Distance
		result.Duration += edge.TraverseTime
	}
	return result
}

// EdgeWithCost is a street segment annotated with its exposure factor, as
// rendered by the shadow map.
type EdgeWithCost struct {
	From   GeoPoint `json:"fromPoint"`
	To     GeoPoint `json:"toPoint"`
	Factor float64  `json:"factor"`
}
