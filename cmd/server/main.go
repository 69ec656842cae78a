package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/ad-launcher/internal/api"
	"github.com/ignite/ad-launcher/internal/bulk"
	"github.com/ignite/ad-launcher/internal/config"
	"github.com/ignite/ad-launcher/internal/insights"
	"github.com/ignite/ad-launcher/internal/launch"
	"github.com/ignite/ad-launcher/internal/media"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
	"github.com/ignite/ad-launcher/internal/pkg/retry"
	"github.com/ignite/ad-launcher/internal/platform/meta"
	"github.com/ignite/ad-launcher/internal/repository/postgres"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		logger.New("info").WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Logging.Level)

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("database unreachable")
	}
	store := postgres.NewStore(db)

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, image-hash cache disabled")
			rdb = nil
		}
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	uploadCache := media.NewCache(rdb, cfg.Redis.CacheTTLDuration())
	factory := func(token, accountExternalID string) bulk.Clients {
		client := meta.NewClient(meta.Config{
			BaseURL:       cfg.Meta.BaseURL,
			APIVersion:    cfg.Meta.APIVersion,
			AccessToken:   token,
			Timeout:       time.Duration(cfg.Meta.TimeoutSeconds) * time.Second,
			RatePerSecond: cfg.Meta.RatePerSecond,
			RateBurst:     cfg.Meta.RateBurst,
		}, log, m)
		uploader := media.NewUploader(client, accountExternalID, log, media.Options{
			Cache:     uploadCache,
			ChunkSize: cfg.Media.ChunkSizeBytes,
			ReadinessPolicy: retry.Policy{
				MaxAttempts: cfg.Media.ReadinessAttempts,
				Delay:       time.Duration(cfg.Media.ReadinessDelaySeconds) * time.Second,
			},
			ThumbnailPolicy: retry.Policy{
				MaxAttempts: cfg.Media.ThumbnailAttempts,
				Delay:       time.Duration(cfg.Media.ThumbnailDelaySeconds) * time.Second,
			},
			Metrics: m,
		})
		return bulk.Clients{Graph: client, Media: uploader}
	}

	runner := launch.NewRunner(log, m)
	orchestrator := bulk.NewOrchestrator(store, factory, log, m)
	syncer := insights.NewSyncer(store, log, m)

	handlers := api.NewHandlers(cfg, store, runner, orchestrator, syncer, log, m, db, rdb)
	router := api.SetupRoutes(handlers, registry)
	server := api.NewServer(cfg.Server, router)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("ad launcher listening")
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
	db.Close()
	if rdb != nil {
		rdb.Close()
	}
}
