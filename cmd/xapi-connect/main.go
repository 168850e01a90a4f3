package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/aevon-lab/xapi-connect/internal/auth"
	corecfg "github.com/aevon-lab/xapi-connect/internal/core/config"
	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/core/storage/source"
	"github.com/aevon-lab/xapi-connect/internal/ingestion"
	"github.com/aevon-lab/xapi-connect/internal/lrs"
	"github.com/aevon-lab/xapi-connect/internal/metrics"
	"github.com/aevon-lab/xapi-connect/internal/report"
	"github.com/aevon-lab/xapi-connect/internal/server"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "xapi-connect.yaml", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before the config")
	flag.Parse()

	// 0. Load .env so XAPI_ overrides can live next to the binary
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	slog.SetDefault(newLogger(cfg.Server.Mode))
	slog.Info("Loaded config",
		"lrs_url", cfg.LRS.URL,
		"directory_source", cfg.Directory.Source,
		"auth_enabled", cfg.Auth.Enabled(),
		"mode", cfg.Server.Mode)

	// 3. Initialize Directory (PostgreSQL or YAML fixture)
	dir, err := source.Open(cfg)
	if err != nil {
		slog.Error("Failed to open directory", "source", cfg.Directory.Source, "error", err)
		os.Exit(1)
	}
	defer dir.Close()

	// 4. Initialize Metrics and the LRS transport
	metricsMgr := metrics.NewManager()

	client, err := lrs.NewClient(cfg.LRS.ClientConfig(), lrs.WithMetrics(metricsMgr))
	if err != nil {
		slog.Error("Failed to initialize LRS client", "error", err)
		os.Exit(1)
	}

	// 5. Initialize the statement pipeline
	settings, err := cfg.XAPI.Settings()
	if err != nil {
		slog.Error("Invalid xAPI settings", "error", err)
		os.Exit(1)
	}
	reporter := xapi.NewReporter(xapi.NewBuilder(settings), client)

	ingestionSvc := ingestion.NewService(storage.NewResolver(dir), reporter, ingestion.Options{
		MaxBodySizeMB: cfg.Server.MaxBodySizeMB,
		BatchWorkers:  cfg.Ingestion.BatchWorkers,
		MaxBatchSize:  cfg.Ingestion.MaxBatchSize,
		Metrics:       metricsMgr,
	})

	// 6. Initialize Reports
	reportOpts := []report.Option{report.WithMetrics(metricsMgr)}
	var guards []gin.HandlerFunc
	if cfg.Auth.Enabled() {
		authCfg := auth.Config{Secret: []byte(cfg.Auth.JWTSecret), Issuer: cfg.Auth.Issuer}
		guards = append(guards, auth.Middleware(authCfg))
		reportOpts = append(reportOpts, report.WithRequiredRole(cfg.Auth.ReportRole))
	} else {
		slog.Warn("Authentication disabled: auth.jwt_secret is empty")
	}
	reportSvc := report.NewService(dir, client, reportOpts...)

	// 7. Initialize Server
	var health server.HealthChecker
	if dir.Adapter != nil {
		health = dir.Adapter.DB()
	}
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), health, metricsMgr, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine.Group("", guards...))
	reportSvc.RegisterRoutes(srv.Engine, guards...)

	// 8. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// newLogger returns a text handler for debug mode and JSON otherwise.
func newLogger(mode string) *slog.Logger {
	if mode == "debug" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
