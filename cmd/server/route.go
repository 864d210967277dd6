package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sunnyway/internal/config"
	"sunnyway/internal/domain/entities"
	"sunnyway/internal/services"
)

func routeCmd() *cobra.Command {
	var (
		graphPath    string
		algorithm    string
		departure    string
		preferShadow bool
		maxFactor    float64
	)

	cmd := &cobra.Command{
		Use:   "route <from-lat,lon> <to-lat,lon>",
		Short: "Compute one route and print it as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			from, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			to, err := parsePoint(args[1])
			if err != nil {
				return err
			}
			alg, err := entities.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			var at time.Time
			if departure != "" {
				if at, err = time.Parse(time.RFC3339, departure); err != nil {
					return fmt.Errorf("--at: %w", err)
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if graphPath != "" {
				cfg.Graph.Path = graphPath
			}
			cfg.Pool.ShardCount = 1
			cfg.Pool.QueueSize = 1

			return runRoute(cfg, services.NavigateRequest{
				From:         from,
				To:           to,
				Algorithm:    alg,
				Departure:    at,
				PreferShadow: preferShadow,
				MaxFactor:    maxFactor,
			})
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "edge CSV, overrides GRAPH_PATH")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(entities.AlgorithmDistance), "distance or shadow")
	cmd.Flags().StringVar(&departure, "at", "", "departure time, RFC 3339 (default now)")
	cmd.Flags().BoolVar(&preferShadow, "prefer-shadow", true, "seek shade instead of sun")
	cmd.Flags().Float64Var(&maxFactor, "max-factor", 0, "exposure factor cap, 0 for the default")
	return cmd
}

func parsePoint(s string) (entities.GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return entities.GeoPoint{}, fmt.Errorf("point %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("point %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return entities.GeoPoint{}, fmt.Errorf("point %q: %w", s, err)
	}
	p := entities.NewGeoPoint(lat, lon)
	if !p.Valid() {
		return entities.GeoPoint{}, fmt.Errorf("point %q: out of range", s)
	}
	return p, nil
}

func runRoute(cfg *config.Config, req services.NavigateRequest) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	a.start()
	defer a.close()

	result, err := a.navigationService.Navigate(context.Background(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
