// Command report builds the county unemployment-claims artifacts: one
// narrative report and one weekly-claims chart per county, a state-wide
// choropleth GeoJSON, and a machine-readable run summary.
//
// Configuration comes from environment variables (see internal/config);
// input paths may also be given as flags, which take precedence:
//
//	go run ./cmd/report \
//	  -claims data/weekly_claims.csv \
//	  -laborforce data/laus_laborforce.xlsx \
//	  -period 2020-03 \
//	  -geojson data/ne_counties.geojson \
//	  -out out
//
// With RUN_INTERVAL set, the process stays up, re-runs on the interval,
// and serves /healthz, /readyz, and /metrics on HTTP_ADDR.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/county-claims-report/internal/adapter/http"
	"github.com/couchcryptid/county-claims-report/internal/artifact"
	"github.com/couchcryptid/county-claims-report/internal/config"
	"github.com/couchcryptid/county-claims-report/internal/loader"
	"github.com/couchcryptid/county-claims-report/internal/observability"
	"github.com/couchcryptid/county-claims-report/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ClaimsPath, "claims", cfg.ClaimsPath, "path to the weekly claims CSV")
	flag.StringVar(&cfg.LaborForcePath, "laborforce", cfg.LaborForcePath, "path to the labor-force workbook (.xlsx or .csv)")
	flag.StringVar(&cfg.Period, "period", cfg.Period, "labor-force reporting period, e.g. 2020-03")
	flag.StringVar(&cfg.GeoJSONPath, "geojson", cfg.GeoJSONPath, "county polygon GeoJSON (empty disables the choropleth)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory for generated artifacts")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	claims := loader.NewClaimsFile(cfg.ClaimsPath)
	labor := loader.NewLaborForceFile(cfg.LaborForcePath, cfg.Period)

	writers := []pipeline.ArtifactWriter{
		artifact.NewReportWriter(filepath.Join(cfg.OutputDir, "reports")),
		artifact.NewChartWriter(filepath.Join(cfg.OutputDir, "charts")),
	}
	if cfg.GeoJSONPath != "" {
		writers = append(writers, artifact.NewChoroplethWriter(cfg.GeoJSONPath, cfg.OutputDir))
	} else {
		logger.Info("choropleth disabled, no county polygons configured")
	}
	writers = append(writers, artifact.NewSummaryWriter(cfg.OutputDir))

	p := pipeline.New(claims, labor, writers, cfg.Period, logger, metrics, clockwork.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One shot: build, write, exit.
	if cfg.RunInterval <= 0 {
		if _, err := p.RunOnce(ctx); err != nil {
			logger.Error("build failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Interval mode: keep rebuilding and serve observability endpoints.
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx, cfg.RunInterval); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
