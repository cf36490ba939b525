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
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/wakeup-planner-api/api/swagger"
	"github.com/noah-isme/wakeup-planner-api/internal/handler"
	internalmiddleware "github.com/noah-isme/wakeup-planner-api/internal/middleware"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	"github.com/noah-isme/wakeup-planner-api/internal/repository"
	"github.com/noah-isme/wakeup-planner-api/internal/service"
	"github.com/noah-isme/wakeup-planner-api/pkg/cache"
	"github.com/noah-isme/wakeup-planner-api/pkg/config"
	"github.com/noah-isme/wakeup-planner-api/pkg/database"
	"github.com/noah-isme/wakeup-planner-api/pkg/export"
	"github.com/noah-isme/wakeup-planner-api/pkg/jobs"
	"github.com/noah-isme/wakeup-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/wakeup-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/wakeup-planner-api/pkg/middleware/requestid"
)

// @title Wake-up Planner API
// @version 1.0.0
// @description Computes the next wake-up alarm from the university timetable, reminders and travel time.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid timezone", "timezone", cfg.Timezone, "error", err)
	}
	clock := service.SystemClock(loc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "driver", cfg.Database.Driver, "error", err)
	}
	defer db.Close()

	storeRepo := repository.NewStoreRepository(db)
	if err := storeRepo.EnsureSchema(context.Background()); err != nil {
		logr.Sugar().Fatalw("failed to prepare store schema", "error", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Timetable.CacheTTL, logr, redisClient != nil)

	calendar := models.DefaultAcademicCalendar()
	validate := validator.New()
	store := service.NewDocumentStore(storeRepo, metrics, logr, clock)

	feed := repository.NewTimetableFeedRepository(cfg.Timetable.FeedURL, cfg.Timetable.Referer, cfg.Timetable.FetchTimeout, logr)
	timetableSvc := service.NewTimetableService(feed, store, cacheSvc, service.NewScheduleNormalizer(calendar), metrics, logr, clock, service.TimetableConfig{
		CacheTTL: cfg.Timetable.CacheTTL,
		MaxAge:   cfg.Timetable.MaxAge,
	})

	refreshQueue := jobs.NewQueue("timetable-refresh", refreshHandler(timetableSvc, metrics, logr), jobs.QueueConfig{
		Workers:    cfg.Refresh.Workers,
		MaxRetries: cfg.Refresh.Retries,
		RetryDelay: cfg.Refresh.RetryDelay,
		Logger:     logr,
	})
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()
	refreshQueue.Start(queueCtx)
	defer refreshQueue.Stop()

	settingsSvc := service.NewSettingsService(store, calendar, validate, logr)
	reminderSvc := service.NewReminderService(store, validate, logr, clock)
	customSvc := service.NewCustomLessonService(store, calendar, validate, logr, clock)
	routeSvc := service.NewRouteService(nil, store, logr, clock, cfg.Routing.CacheMaxAge)
	scheduleSvc := service.NewScheduleService(settingsSvc, customSvc, timetableSvc, calendar, refreshQueue, logr)
	exportSvc := service.NewExportService(scheduleSvc, export.NewCSVExporter(), export.NewPDFExporter(cfg.Export.PDFFontPath), logr)
	plannerSvc := service.NewPlannerService(calendar, service.PlannerDeps{
		Settings:  settingsSvc,
		Reminders: reminderSvc,
		Custom:    customSvc,
		Timetable: timetableSvc,
		Routes:    routeSvc,
		Metrics:   metrics,
		Logger:    logr,
	})
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.Auth.Secret,
		AccessTokenExpiry: cfg.Auth.Expiration,
		PassphraseHash:    cfg.Auth.PassphraseHash,
		Issuer:            cfg.Auth.Issuer,
	}, clock)
	if cfg.Auth.PassphraseHash == "" {
		logr.Warn("AUTH_PASSPHRASE_HASH is empty, every login will be rejected")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, map[string]handler.Pinger{
		"store": storeRepo,
		"cache": cacheRepo,
	})
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc, clock)
	customHandler := handler.NewCustomLessonHandler(customSvc)
	reminderHandler := handler.NewReminderHandler(reminderSvc)
	routeHandler := handler.NewRouteHandler(settingsSvc, routeSvc, clock)
	alarmHandler := handler.NewAlarmHandler(plannerSvc, clock)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/token", authHandler.IssueToken)

	protected := api.Group("")
	protected.Use(internalmiddleware.JWT(authSvc))
	protected.GET("/auth/session", authHandler.Session)

	protected.GET("/settings", settingsHandler.Get)
	protected.PUT("/settings", settingsHandler.Update)

	protected.GET("/schedule", scheduleHandler.Week)
	protected.POST("/schedule/refresh", scheduleHandler.Refresh)
	protected.GET("/schedule/export", scheduleHandler.Export)

	protected.GET("/custom-lessons", customHandler.List)
	protected.POST("/custom-lessons", customHandler.Create)
	protected.DELETE("/custom-lessons/:id", customHandler.Delete)

	protected.GET("/reminders", reminderHandler.List)
	protected.POST("/reminders", reminderHandler.Create)
	protected.PUT("/reminders/:id", reminderHandler.Update)
	protected.DELETE("/reminders/:id", reminderHandler.Delete)

	protected.GET("/route", routeHandler.Estimate)
	protected.GET("/alarm/next", alarmHandler.Next)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Database.Driver, "cache", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// refreshHandler downloads a group's timetable in the background.
func refreshHandler(timetable *service.TimetableService, metrics *service.MetricsService, logr *zap.Logger) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		group, _ := job.Payload.(string)
		if group == "" {
			metrics.RecordRefreshJob("invalid")
			return nil
		}
		snapshot, err := timetable.Refresh(ctx, group)
		if err != nil {
			metrics.RecordRefreshJob("failed")
			return err
		}
		metrics.RecordRefreshJob("succeeded")
		logr.Info("timetable refreshed", zap.String("group", group), zap.String("job_id", job.ID), zap.Time("fetched_at", snapshot.FetchedAt))
		return nil
	}
}
