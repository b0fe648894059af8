package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"

	accesshandler "vitrina/internal/access/handler"
	accessservice "vitrina/internal/access/service"
	accessstore "vitrina/internal/access/store"
	cataloghandler "vitrina/internal/catalog/handler"
	catalogservice "vitrina/internal/catalog/service"
	catalogstore "vitrina/internal/catalog/store"
	"vitrina/internal/gate"
	"vitrina/internal/gate/bridge"
	"vitrina/internal/gate/sessioncache"
	"vitrina/internal/initdata"
	"vitrina/internal/platform/config"
	"vitrina/internal/platform/database"
	"vitrina/internal/platform/health"
	"vitrina/internal/platform/httpserver"
	"vitrina/internal/platform/logger"
	"vitrina/internal/platform/metrics"
	platformredis "vitrina/internal/platform/redis"
	httptransport "vitrina/internal/transport/http"
	"vitrina/internal/upload"
	"vitrina/migrations"
)

// main wires dependencies and keeps the server lifecycle small. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.IsDevelopment())

	log.Info("initializing vitrina",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)
	if cfg.BotToken == "" {
		log.Warn("TELEGRAM_BOT_TOKEN is not set, every payload verification will fail closed")
	}

	m := metrics.New()

	pool, err := database.New(cfg.Database)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close() //nolint:errcheck // process exit path
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Error("goose dialect", "error", err)
			os.Exit(1)
		}
		if err := goose.Up(pool.DB(), "."); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	var sessionCache sessioncache.Store
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck // process exit path
		sessionCache = sessioncache.NewRedis(redisClient, cfg.SessionTTL)
		log.Info("session cache backed by redis")
	} else {
		sessionCache = sessioncache.NewMemory(cfg.SessionTTL)
		log.Info("session cache in memory")
	}

	var accessSt accessservice.Store
	var catalogSt catalogstore.Store
	if pool != nil {
		accessSt = accessstore.NewPostgres(pool.DB())
		catalogSt = catalogstore.NewPostgres(pool.DB())
	} else {
		log.Warn("DATABASE_URL is not set, using in-memory stores")
		accessSt = accessstore.NewInMemory()
		catalogSt = catalogstore.NewInMemory()
	}

	accessSvc := accessservice.New(accessSt,
		accessservice.WithLogger(log),
		accessservice.WithMetrics(m),
		accessservice.WithCheckTimeout(cfg.AccessCheckTimeout),
	)
	catalogSvc := catalogservice.New(catalogSt,
		catalogservice.WithLogger(log),
		catalogservice.WithMetrics(m),
	)

	verifier := initdata.NewVerifier(cfg.BotToken,
		initdata.WithLogger(log),
		initdata.WithMetrics(m),
	)
	tokens := gate.NewSessionTokens(cfg.SessionSigningKey, cfg.SessionTTL)

	gateOpts := []gate.Option{gate.WithLogger(log), gate.WithMetrics(m)}
	if cfg.IsDevelopment() {
		log.Warn("development environment: mock identity bridge enabled")
		gateOpts = append(gateOpts, gate.WithDevelopmentBridge())
	}
	sessionGate := gate.New(verifier, accessSvc, sessionCache, tokens, gateOpts...)

	s3Client, err := upload.NewClient(context.Background(), cfg.S3)
	if err != nil {
		log.Error("object storage init failed", "error", err)
		os.Exit(1)
	}
	uploadSvc := upload.New(s3Client, cfg.S3.Bucket, cfg.S3.PublicBaseURL,
		upload.WithLogger(log),
		upload.WithMetrics(m),
		upload.WithMaxBytes(cfg.S3.MaxUploadSize),
	)

	healthHandler := health.New(cfg.Environment)
	if pool != nil {
		healthHandler.RegisterCheck("database", pool.Health)
	}
	if redisClient != nil {
		healthHandler.RegisterCheck("redis", redisClient.Health)

		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				redisClient.RecordPoolStats()
			}
		}()
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Config:  &cfg,
		Gate:    sessionGate,
		Catalog: cataloghandler.New(catalogSvc, log),
		Access:  accesshandler.New(accessSvc, log),
		Upload:  upload.NewHandler(uploadSvc, log),
		Health:  healthHandler,
		Dialogs: bridge.NewLive(nil),
		Logger:  log,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
