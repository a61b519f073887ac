package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	logger.Info("costmap planner starting",
		slog.Float64("resolution", cfg.Resolution),
		slog.Any("origin", cfg.GridOrigin()),
		slog.Float64("step_cost", cfg.StepCost()),
		slog.Int("lethal_cost", cfg.LethalCost),
		slog.String("heuristic", cfg.Heuristic))

	var zones []KeepOutZone
	if cfg.KeepOutDir != "" {
		loaded, err := LoadKeepOutZones(cfg.KeepOutDir, logger)
		if err != nil {
			return err
		}
		zones = PrepareZones(loaded, cfg.KeepOutSimplify, logger)
	}

	metrics := NewMetrics()
	service, err := NewPlanService(cfg, NewSpatialIndex(zones), metrics, logger)
	if err != nil {
		return err
	}

	if cfg.StaticMap != "" {
		m, err := LoadStaticMap(cfg.StaticMap)
		if err != nil {
			return err
		}
		service.SetStaticMap(m)
		logger.Info("loaded static map",
			slog.String("path", cfg.StaticMap),
			slog.Int("width", m.Costmap.Width()),
			slog.Int("height", m.Costmap.Height()),
			slog.Float64("resolution", m.Costmap.Resolution()))
	} else {
		logger.Info("no static map configured, requests must carry a costmap")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(service, metrics, logger, cfg.CORSOrigin, cfg.MaxRequestBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", cfg.ListenAddr),
			slog.Int("keepout_zones", service.ZoneCount()),
			slog.String("cors_origin", cfg.CORSOrigin))
		logger.Info("endpoints: POST /make_plan, GET /map, GET /health, GET /metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
