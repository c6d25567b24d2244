package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Oumer1234/service-marketplace/config"
	"github.com/Oumer1234/service-marketplace/cron"
	"github.com/Oumer1234/service-marketplace/database"
	bookingRepo "github.com/Oumer1234/service-marketplace/database/repository/booking"
	notificationRepo "github.com/Oumer1234/service-marketplace/database/repository/notification"
	providerRepo "github.com/Oumer1234/service-marketplace/database/repository/provider"
	userRepo "github.com/Oumer1234/service-marketplace/database/repository/user"
	"github.com/Oumer1234/service-marketplace/handlers"
	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/routes"
	"github.com/Oumer1234/service-marketplace/services/booking"
	"github.com/Oumer1234/service-marketplace/services/notification"
	"github.com/Oumer1234/service-marketplace/services/storage"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("main: failed to load config", zap.Error(err))
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := database.Connect(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Disconnect(mongoClient)
	db := mongoClient.Database(cfg.DatabaseName)

	// Redis is optional; without it sessions are verified on every request.
	var authCache *redis.Client
	if client, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB); err != nil {
		logger.Warn("main: auth cache unavailable, continuing without it", zap.Error(err))
	} else {
		authCache = client
		defer authCache.Close()
	}

	// repositories.
	bookings, err := bookingRepo.NewMongoBookingRepo(rootCtx, db)
	if err != nil {
		logger.Fatal("main: failed to initialize booking repository", zap.Error(err))
	}
	providers, err := providerRepo.NewMongoProviderRepo(rootCtx, db)
	if err != nil {
		logger.Fatal("main: failed to initialize provider repository", zap.Error(err))
	}
	users := userRepo.NewMongoUserRepo(db)
	notifications, err := notificationRepo.NewMongoNotificationRepo(rootCtx, db)
	if err != nil {
		logger.Fatal("main: failed to initialize notification repository", zap.Error(err))
	}

	store, err := storage.New(rootCtx, storage.Config{
		Driver:              cfg.StorageDriver,
		Folder:              cfg.StorageFolder,
		LocalPath:           cfg.LocalStoragePath,
		LocalBaseURL:        cfg.LocalStorageBaseURL,
		CloudinaryCloudName: cfg.CloudinaryCloudName,
		CloudinaryAPIKey:    cfg.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.CloudinaryAPISecret,
		S3Endpoint:          cfg.S3Endpoint,
		S3Region:            cfg.S3Region,
		S3Bucket:            cfg.S3Bucket,
		S3AccessKey:         cfg.S3AccessKey,
		S3SecretKey:         cfg.S3SecretKey,
		GCSBucket:           cfg.GCSBucket,
		GCSCredentialsFile:  cfg.FirebaseCredentialsFile,
	})
	if err != nil {
		logger.Fatal("main: failed to initialize attachment storage", zap.Error(err))
	}

	// notifications.
	var pusher notification.Pusher
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := notification.NewFCMPusher(rootCtx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Warn("main: push notifications disabled", zap.Error(err))
		} else {
			pusher = fcm
		}
	}
	dispatcher := notification.NewDispatcher(notifications, users, pusher, logger)

	var enqueuer notification.Enqueuer = notification.NoopEnqueuer{}
	if cfg.QueueEnabled {
		queueOpts := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		}
		asynqEnqueuer := notification.NewAsynqEnqueuer(queueOpts)
		defer asynqEnqueuer.Close()
		enqueuer = asynqEnqueuer

		worker := cron.NewNotificationWorker(queueOpts, dispatcher, logger)
		worker.Start()
		defer worker.Shutdown()
	}

	// services.
	bookingService, err := booking.NewDefaultBookingService(bookings, providers, users, store, enqueuer, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize booking service", zap.Error(err))
	}

	healthClients := []*redis.Client{}
	if authCache != nil {
		healthClients = append(healthClients, authCache)
	}
	health := utils.NewHealthMonitor(mongoClient, healthClients...)
	health.Start(rootCtx, 30*time.Second)

	bookingHandler := handlers.NewBookingHandler(bookingService, cfg.MaxAttachmentBytes, cfg.MaxAttachments)
	dashboardHandler := handlers.NewDashboardHandler(bookingService)
	notificationHandler := handlers.NewNotificationHandler(dispatcher)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth: middleware.SessionAuthMiddleware([]byte(cfg.SessionSecret), authCache, cfg.SessionCacheTTL),

		// Booking endpoints.
		CreateBookingHandler:       bookingHandler.CreateBookingHandler,
		GetBookingHandler:          bookingHandler.GetBookingHandler,
		UpdateBookingStatusHandler: bookingHandler.UpdateBookingStatusHandler,

		// Dashboard endpoints.
		OverviewHandler:         dashboardHandler.OverviewHandler,
		ProviderBookingsHandler: dashboardHandler.ProviderBookingsHandler,
		ProviderStatsHandler:    dashboardHandler.ProviderStatsHandler,
		UserBookingsHandler:     dashboardHandler.UserBookingsHandler,

		ListNotificationsHandler: notificationHandler.ListNotificationsHandler,
		HealthHandler:            handlers.HealthHandler(health),
	}
	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		handlerBundle.UploadsDir = cfg.LocalStoragePath
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	router.MaxMultipartMemory = 8 << 20

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
