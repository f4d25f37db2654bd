package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mergington-activities-api/api/swagger"
	"github.com/noah-isme/mergington-activities-api/internal/bootstrap"
	"github.com/noah-isme/mergington-activities-api/internal/handler"
	internalmiddleware "github.com/noah-isme/mergington-activities-api/internal/middleware"
	"github.com/noah-isme/mergington-activities-api/internal/repository"
	"github.com/noah-isme/mergington-activities-api/internal/service"
	"github.com/noah-isme/mergington-activities-api/pkg/cache"
	"github.com/noah-isme/mergington-activities-api/pkg/config"
	"github.com/noah-isme/mergington-activities-api/pkg/jobs"
	"github.com/noah-isme/mergington-activities-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mergington-activities-api/pkg/middleware/cors"
	"github.com/noah-isme/mergington-activities-api/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/noah-isme/mergington-activities-api/pkg/middleware/requestid"
	"github.com/noah-isme/mergington-activities-api/pkg/password"
)

// @title Mergington High Activities API
// @version 1.0.0
// @description Extracurricular activity catalog with teacher-managed rosters
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction && cfg.JWT.Secret == "dev_secret" {
		return errors.New("JWT_SECRET must be set in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logr.Warn("close stores", zap.Error(err))
		}
	}()

	hasher := password.NewArgon2(password.DefaultParams)
	var seeded bootstrap.SeedResult
	if cfg.Store.SeedOnStart {
		seeded, err = bootstrap.Seed(ctx, stores, hasher)
		if err != nil {
			return err
		}
		logr.Info("seed applied", zap.Int("activities", seeded.Activities), zap.Int("teachers", seeded.Teachers))
	}

	metrics := service.NewMetricsService()

	var catalogCache *service.CacheService
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("catalog cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
			catalogCache = service.NewCacheService(cacheRepo, metrics, cfg.Cache.CacheTTL, logr, true)
		}
	}

	var auditSink service.AuditSink = service.NewLogAuditSink(logr)
	if stores.Audit != nil {
		auditSink = stores.Audit
	}
	audit := service.NewAuditService(auditSink, jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: cfg.Audit.MaxRetries,
		Logger:     logr,
	})
	audit.Start(ctx)
	defer audit.Stop()

	catalog := service.NewCatalogService(stores.Activities, catalogCache, logr)
	if seeded.Activities > 0 {
		if err := catalog.ResetCache(ctx); err != nil {
			logr.Warn("catalog cache reset failed", zap.Error(err))
		}
	}
	registration := service.NewRegistrationService(service.RegistrationServiceParams{
		Store:   stores.Activities,
		Cache:   catalogCache,
		Metrics: metrics,
		Audit:   audit,
		Logger:  logr,
	})
	auth := service.NewAuthService(stores.Teachers, hasher, nil, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	}).WithMetrics(metrics).WithAudit(audit)
	exporter := service.NewExportService(catalog, logr, nil, nil)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(metrics))
	}

	handler.RegisterRoutes(r, handler.Routes{
		Prefix:        cfg.APIPrefix,
		Activities:    handler.NewActivityHandler(catalog, registration, exporter),
		Auth:          handler.NewAuthHandler(auth),
		Metrics:       handler.NewMetricsHandler(metrics, catalog),
		Tokens:        auth,
		LoginLimiter:  ratelimit.NewTokenBucket(cfg.Login.Burst, cfg.Login.RatePerMinute).Middleware(),
		ExposeMetrics: cfg.Metrics.Enabled,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("store", stores.Driver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
