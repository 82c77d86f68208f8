package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BackCheck/justice-unveiled/internal/application/correlation"
	appdoc "github.com/BackCheck/justice-unveiled/internal/application/document"
	"github.com/BackCheck/justice-unveiled/internal/config"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres/repositories"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/redis"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/prometheus"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/storage/minio"
	"github.com/BackCheck/justice-unveiled/internal/intelligence/extraction"
	httpserver "github.com/BackCheck/justice-unveiled/internal/interfaces/http"
	"github.com/BackCheck/justice-unveiled/internal/interfaces/http/handlers"
	"github.com/BackCheck/justice-unveiled/internal/interfaces/http/middleware"
)

const (
	defaultConfigPath = "configs/config.yaml"
	version           = "0.3.0"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting api server",
		logging.String("version", version),
		logging.Int("http_port", cfg.Server.Port))

	ctx := context.Background()

	// PostgreSQL is required.
	conn, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Error("database connection failed", logging.Err(err))
		os.Exit(1)
	}
	defer conn.Close()

	if *migrate {
		if err := conn.RunMigrations(cfg.Database.MigrationPath); err != nil {
			logger.Error("migrations failed", logging.Err(err))
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Redis is optional; without it the analysis cache is skipped.
	var cache redis.Cache
	var redisClient *redis.Client
	redisClient, err = redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, analysis caching disabled", logging.Err(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL))
	}

	// MinIO is optional; without it document endpoints stay unmounted.
	store, err := minio.NewDocumentStore(ctx, cfg.MinIO, logger)
	if err != nil {
		logger.Warn("object storage unavailable, document endpoints disabled", logging.Err(err))
		store = nil
	}

	// Extraction is optional; without an API key it reports unavailable.
	var extractor extraction.Extractor
	if cfg.Extraction.APIKey != "" {
		extractor, err = extraction.NewExtractor(cfg.Extraction, logger)
		if err != nil {
			logger.Warn("extraction unavailable", logging.Err(err))
		}
	}

	var metrics *prometheus.AppMetrics
	var collector prometheus.MetricsCollector
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			logger.Error("metrics init failed", logging.Err(err))
			os.Exit(1)
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	claimRepo := repositories.NewClaimRepo(conn, logger)
	requirementRepo := repositories.NewRequirementRepo(conn, logger)
	linkRepo := repositories.NewLinkRepo(conn, logger)
	fulfillmentRepo := repositories.NewFulfillmentRepo(conn, logger)

	correlationSvc := correlation.NewService(
		claimRepo, requirementRepo, linkRepo, fulfillmentRepo, cache, logger, metrics)

	var documentSvc *appdoc.Service
	var documentHandler *handlers.DocumentHandler
	if store != nil {
		uploadRepo := repositories.NewUploadRepo(conn, logger)
		eventRepo := repositories.NewEventRepo(conn, logger)
		documentSvc = appdoc.NewService(uploadRepo, eventRepo, store, extractor, logger, metrics)
		documentHandler = handlers.NewDocumentHandler(documentSvc, cfg.Server.MaxBodySize)
	}

	checkers := []handlers.HealthChecker{
		handlers.CheckerFunc{ComponentName: "postgres", Fn: conn.HealthCheck},
	}
	if redisClient != nil {
		checkers = append(checkers, handlers.CheckerFunc{ComponentName: "redis", Fn: redisClient.Ping})
	}
	if store != nil {
		checkers = append(checkers, handlers.CheckerFunc{ComponentName: "minio", Fn: store.Ping})
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = []string{"*"}
	router := httpserver.NewRouter(httpserver.RouterConfig{
		ClaimHandler:     handlers.NewClaimHandler(correlationSvc),
		AnalysisHandler:  handlers.NewAnalysisHandler(correlationSvc, documentSvc),
		CatalogHandler:   handlers.NewCatalogHandler(correlationSvc),
		DocumentHandler:  documentHandler,
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		CORS:             &corsCfg,
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", logging.Err(err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 30 * time.Second
}
