package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"sunnyway/internal/config"
	"sunnyway/internal/geo"
	"sunnyway/internal/graph"
	"sunnyway/internal/logging"
	"sunnyway/internal/navigator"
	"sunnyway/internal/pool"
	"sunnyway/internal/services"
)

// app holds everything built from the configuration. The graph and index are
// loaded once and shared read-only by every service and worker.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	graph *graph.Graph
	index *geo.KdTree

	distancePool *pool.Pool
	shadowPool   *pool.Pool

	locationService    *services.LocationService
	navigationService  *services.NavigationService
	shadowMapService   *services.ShadowMapService
	serviceAreaService *services.ServiceAreaService
}

func newApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	segments, err := graph.LoadFile(cfg.Graph.Path)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}
	g, index, err := graph.Build(segments)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	logger.Info("graph loaded",
		zap.String("path", cfg.Graph.Path),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	bounds := geo.NewBoundFactory(cfg.Navigation.MinOffset, cfg.Navigation.OffsetFactor)
	shadowCfg := navigator.ShadowConfig{
		Window:           cfg.Navigation.ReplanWindow,
		UTCOffsetHours:   cfg.Solar.UTCOffsetHours,
		DefaultMaxFactor: cfg.Navigation.DefaultMaxFactor,
	}

	// Navigators are not interchangeable, so each algorithm gets its own pool.
	distancePool := pool.New("distance", cfg.Pool.ShardCount, cfg.Pool.QueueSize, func() navigator.Navigator {
		return navigator.NewDistanceNavigator(g, bounds, cfg.Navigation.AvoidPenalty)
	}, logger)
	shadowPool := pool.New("shadow", cfg.Pool.ShardCount, cfg.Pool.QueueSize, func() navigator.Navigator {
		return navigator.NewShadowNavigator(g, bounds, shadowCfg, logger.Named("shadow"))
	}, logger)

	locationService := services.NewLocationService(g, index)

	return &app{
		cfg:          cfg,
		logger:       logger,
		graph:        g,
		index:        index,
		distancePool: distancePool,
		shadowPool:   shadowPool,

		locationService: locationService,
		navigationService: services.NewNavigationService(locationService, distancePool, shadowPool,
			cfg.Navigation.SnapDistanceMeters, logger),
		shadowMapService: services.NewShadowMapService(g, locationService, cfg.Solar.UTCOffsetHours,
			cfg.Navigation.DefaultMaxFactor, cfg.Navigation.MaxShadowMapRadius, logger),
		serviceAreaService: services.NewServiceAreaService(g),
	}, nil
}

func (a *app) start() {
	a.distancePool.Start()
	a.shadowPool.Start()
}

func (a *app) close() {
	a.distancePool.Close()
	a.shadowPool.Close()
	_ = a.logger.Sync()
}
