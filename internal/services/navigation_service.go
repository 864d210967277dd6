package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/navigator"
)

var (
	ErrStartNotOnNetwork = errors.New("failed to locate starting point")
	ErrEndNotOnNetwork   = errors.New("failed to locate ending point")
	ErrNoRoute           = errors.New("no path found")
	ErrInvalidAlgorithm  = errors.New("invalid algorithm")
	ErrInvalidMaxFactor  = errors.New("max factor must be at least 1")
)

// RoutePool runs navigator requests. *pool.Pool satisfies it.
//
// Go Learning Note — Interfaces Defined by the Consumer:
// The services package declares the single method it calls instead of
// importing the concrete pool type. Tests hand in a stub, and the pool
// package never needs to know who uses it.
type RoutePool interface {
	EnqueueAndJoin(ctx context.Context, req navigator.Request) ([]entities.NavigationEdge, error)
}

// NavigateRequest is a route request in geographic coordinates.
type NavigateRequest struct {
	From         entities.GeoPoint
	To           entities.GeoPoint
	Algorithm    entities.Algorithm
	Departure    time.Time
	PreferShadow bool
	// MaxFactor of zero selects the shadow navigator's default.
	MaxFactor float64
}

// NavigationService geocodes both endpoints and dispatches the search to the
// pool serving the requested algorithm.
type NavigationService struct {
	locator      *LocationService
	pools        map[entities.Algorithm]RoutePool
	snapDistance float64
	logger       *zap.Logger
}

func NewNavigationService(
	locator *LocationService,
	distancePool RoutePool,
	shadowPool RoutePool,
	snapDistance float64,
	logger *zap.Logger,
) *NavigationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationService{
		locator: locator,
		pools: map[entities.Algorithm]RoutePool{
			entities.AlgorithmDistance: distancePool,
			entities.AlgorithmShadow:   shadowPool,
		},
		snapDistance: snapDistance,
		logger:       logger,
	}
}

// Navigate computes a route. An unreachable destination is ErrNoRoute; pool
// failures such as pool.ErrQueueFull are returned wrapped.
func (s *NavigationService) Navigate(ctx context.Context, req NavigateRequest) (*entities.NavigationResult, error) {
	routes, ok := s.pools[req.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, req.Algorithm)
	}
	if math.IsNaN(req.MaxFactor) || (req.MaxFactor != 0 && req.MaxFactor < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMaxFactor, req.MaxFactor)
	}

	locateStart := time.Now()
	fromID, err := s.locator.Locate(ctx, req.From, s.snapDistance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStartNotOnNetwork, err)
	}
	toID, err := s.locator.Locate(ctx, req.To, s.snapDistance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndNotOnNetwork, err)
	}
	s.logger.Debug("located route endpoints",
		zap.Int("from", fromID),
		zap.Int("to", toID),
		zap.Float64("from_snap_m", s.locator.SnapDistance(req.From, fromID)),
		zap.Float64("to_snap_m", s.locator.SnapDistance(req.To, toID)),
		zap.Duration("elapsed", time.Since(locateStart)),
	)

	departure := req.Departure
	if departure.IsZero() {
		departure = time.Now()
	}

	start := time.Now()
	path, err := routes.EnqueueAndJoin(ctx, navigator.Request{
		From:         fromID,
		To:           toID,
		Departure:    departure,
		PreferShadow: req.PreferShadow,
		MaxFactor:    req.MaxFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("navigate %d->%d (%s): %w", fromID, toID, req.Algorithm, err)
	}
	computeTime := time.Since(start)

	if len(path) == 0 {
		s.logger.Info("no path found",
			zap.Int("from", fromID),
			zap.Int("to", toID),
			zap.String("algorithm", string(req.Algorithm)),
		)
		return nil, fmt.Errorf("%w: %d->%d", ErrNoRoute, fromID, toID)
	}

	result := entities.NewNavigationResult(path, computeTime)
	s.logger.Info("route computed",
		zap.Int("from", fromID),
		zap.Int("to", toID),
		zap.String("algorithm", string(req.Algorithm)),
		zap.Int("edges", len(path)),
		zap.Float64("distance_m", result.Distance),
		zap.Duration("compute_time", computeTime),
	)
	return result, nil
}
