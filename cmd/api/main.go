package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/todopro_api/internal/cache"
	"github.com/GTDGit/todopro_api/internal/config"
	"github.com/GTDGit/todopro_api/internal/database"
	"github.com/GTDGit/todopro_api/internal/handler"
	"github.com/GTDGit/todopro_api/internal/middleware"
	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/repository"
	"github.com/GTDGit/todopro_api/internal/scheduler"
	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/sse"
	"github.com/GTDGit/todopro_api/internal/utils"
	"github.com/GTDGit/todopro_api/internal/worker"
	"github.com/GTDGit/todopro_api/pkg/whatsapp"
)

// main is the entrypoint for the TodoPro quoting API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting todopro api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Key-value store: Redis when configured, otherwise in memory
	var store cache.Store
	backend := "memory"
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = redisClient
		backend = "redis"
		log.Info().Msg("redis connected successfully")
	} else {
		store = cache.NewMemoryStore()
		log.Warn().Msg("REDIS_HOST not set, calculator state is kept in memory")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	healthRepo := repository.NewHealthRepository(db)

	// 5. Live updates
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Outbound integrations
	var archiver service.DocumentArchiver
	if cfg.S3.Enabled() {
		s3Svc, err := service.NewS3Service(ctx, &cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("S3 initialization failed, document archiving disabled")
		} else {
			archiver = s3Svc
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("document archiving enabled")
		}
	}

	var messenger service.Messenger
	var waMessenger *service.WhatsAppMessenger
	if cfg.WhatsApp.Enabled() {
		waMessenger = service.NewWhatsAppMessenger(whatsapp.NewClient(whatsapp.Config{
			BaseURL:       cfg.WhatsApp.BaseURL,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			AccessToken:   cfg.WhatsApp.AccessToken,
			Timeout:       cfg.WhatsApp.Timeout,
		}))
		messenger = waMessenger
		log.Info().Msg("whatsapp messaging enabled")
	}

	// 7. Services
	if cfg.SignupCode == "" {
		log.Info().Msg("SIGNUP_INVITE_CODE not set, signup is closed")
	}
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.SignupCode)
	clientSvc := service.NewClientService(clientRepo)
	productSvc := service.NewProductService(productRepo)

	catalogSvc := service.NewCatalogService(repository.NewCatalogStore(store), notifier, cfg.Pricing.DefaultAdminFee)
	if err := catalogSvc.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load saved catalog, using defaults")
	}
	calcSvc := service.NewCalculatorService(catalogSvc)

	quoteSvc := service.NewQuoteService(
		repository.NewQuoteStore(store),
		calcSvc,
		pricing.NewAssembler(time.Now, utils.GenerateQuoteID),
		notifier,
	)
	exportSvc := service.NewExportService(quoteSvc, cfg.Company, archiver, messenger)

	leadSvc := service.NewLeadService(repository.NewCRMStore(store), notifier, messenger, cfg.Worker.NotificationTTL)
	if err := leadSvc.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load saved CRM state, using defaults")
	}

	// 8. Handlers
	handlers := &handler.Handlers{
		Health:     handler.NewHealthHandler(healthRepo, store, backend),
		Auth:       handler.NewAuthHandler(authSvc),
		Client:     handler.NewClientHandler(clientSvc),
		Product:    handler.NewProductHandler(productSvc),
		Catalog:    handler.NewCatalogHandler(catalogSvc),
		Calculator: handler.NewCalculatorHandler(calcSvc),
		Quote:      handler.NewQuoteHandler(quoteSvc, exportSvc),
		Lead:       handler.NewLeadHandler(leadSvc),
		SSE:        handler.NewSSEHandler(hub),
	}
	if cfg.WhatsApp.WebhookEnabled() {
		handlers.Webhook = handler.NewWebhookHandler(leadSvc, cfg.WhatsApp.AppSecret, cfg.WhatsApp.VerifyToken)
		log.Info().Msg("whatsapp webhook enabled")
	}

	// 9. Middleware
	limiter := middleware.NewInvalidAuthRateLimiter(5, time.Minute)
	defer limiter.Stop()
	jwtMw := middleware.NewJWTMiddleware(authSvc, limiter)

	// 10. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.LoggingMiddleware())
	handler.SetupRoutes(router, handlers, jwtMw)

	// 11. Background jobs
	go worker.NewNotificationWorker(leadSvc, cfg.Worker.NotificationSweepInterval).Start(ctx)

	var sched *scheduler.Scheduler
	if waMessenger != nil && cfg.WhatsApp.ManagerPhone != "" && cfg.Scheduler.ReportCron != "" {
		loc, err := time.LoadLocation(cfg.Scheduler.ReportTimezone)
		if err != nil {
			loc = time.UTC
		}
		reportSvc := service.NewReportService(quoteSvc, leadSvc, cfg.Company.Name, loc)
		sched = scheduler.New(cfg.Scheduler.ReportCron, loc, reportSvc, waMessenger, cfg.WhatsApp.ManagerPhone)
		if err := sched.Start(); err != nil {
			log.Error().Err(err).Str("cron", cfg.Scheduler.ReportCron).Msg("failed to schedule daily report")
			sched = nil
		} else {
			log.Info().Str("cron", cfg.Scheduler.ReportCron).Str("tz", loc.String()).Msg("daily report scheduled")
		}
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Stop background jobs
	cancel()
	if sched != nil {
		sched.Stop()
	}

	// 15. End event streams, then shutdown HTTP server with timeout
	hub.Close()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
