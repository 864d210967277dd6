package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sunnyway/internal/api"
	"sunnyway/internal/api/handlers"
	"sunnyway/internal/config"
)

func serveCmd() *cobra.Command {
	var port, graphPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the street graph and serve the routing API",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = ":" + port
			}
			if graphPath != "" {
				cfg.Graph.Path = graphPath
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port, overrides PORT")
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "edge CSV, overrides GRAPH_PATH")
	return cmd
}

func runServe(cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	a.start()
	defer a.close()

	gin.SetMode(cfg.Server.GinMode)
	engine := gin.New()
	router := api.NewRouter(
		handlers.NewNavigationHandler(a.navigationService),
		handlers.NewMapHandler(a.shadowMapService, a.serviceAreaService),
		a.logger,
	)
	router.Setup(engine)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("starting sunnyway server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		a.logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("server forced to shut down", zap.Error(err))
		return err
	}
	a.logger.Info("server exited gracefully")
	return nil
}
