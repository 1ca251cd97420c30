package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hvac-backend/internal/auth"
	"hvac-backend/internal/cache"
	"hvac-backend/internal/config"
	"hvac-backend/internal/database"
	"hvac-backend/internal/db"
	"hvac-backend/internal/handlers"
	"hvac-backend/internal/health"
	h "hvac-backend/internal/http"
	"hvac-backend/internal/logger"
	"hvac-backend/internal/middleware"
	"hvac-backend/internal/repositories"
	"hvac-backend/internal/services"
	"hvac-backend/internal/storage"
	"hvac-backend/migrations"

	"go.uber.org/zap"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	migrateOnly := flag.Bool("migrate-only", false, "Run database migrations and exit")
	flag.Parse()

	cfg := config.Load()
	if *port > 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(cfg.Log.Level)
	defer zap.L().Sync()

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalw("[DB] Connection failed", "error", err)
	}
	defer pool.Close()
	log.Infow("[DB] Connected", "host", cfg.Database.Host, "database", cfg.Database.Name)

	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalw("[Migrations] Failed", "error", err)
	}
	if *migrateOnly {
		log.Info("[Migrations] Done, exiting")
		return
	}

	// Redis is optional; the server runs without the cache when it is down.
	var cachePinger health.Pinger
	if cfg.Redis.Enabled {
		if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Warnw("[Redis] Unavailable, continuing without cache", "addr", cfg.Redis.Addr, "error", err)
		} else {
			cachePinger = health.PingFunc(cache.Ping)
			defer cache.Close()
		}
	}

	bucket, err := storage.NewBucket(ctx, cfg)
	if err != nil {
		log.Fatalw("[Storage] Bucket setup failed", "error", err)
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	equipmentRepo := repositories.NewEquipmentRepository(pool)
	serviceRequestRepo := repositories.NewServiceRequestRepository(pool)
	pmocRepo := repositories.NewPMOCRepository(pool)
	financialRepo := repositories.NewFinancialRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	equipmentService := services.NewEquipmentService(equipmentRepo)
	serviceRequestService := services.NewServiceRequestService(serviceRequestRepo)
	pmocService := services.NewPMOCService(pmocRepo)
	financialService := services.NewFinancialService(financialRepo)
	receiptService := services.NewReceiptService(receiptRepo)
	imageService := services.NewImageService(bucket, services.ImageOptionsFromConfig(cfg))
	exportService := services.NewExportService()

	created, err := userService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatalw("[Admin] Bootstrap failed", "email", cfg.Admin.Email, "error", err)
	}
	if created {
		log.Infow("[Admin] Initial administrator created", "email", cfg.Admin.Email)
	}

	checker := health.NewHealthChecker(pool, cachePinger, bucket)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userService, cfg.JWT.CookieName)

	router := h.NewRouter(h.Handlers{
		Auth:           handlers.NewAuthHandler(userService, cfg.JWT.CookieName, cfg.JWT.CookieSecure),
		Users:          handlers.NewUserHandler(userService),
		Equipment:      handlers.NewEquipmentHandler(equipmentService),
		ServiceRequest: handlers.NewServiceRequestHandler(serviceRequestService),
		PMOC:           handlers.NewPMOCHandler(pmocService, exportService),
		Financial:      handlers.NewFinancialHandler(financialService),
		Receipt:        handlers.NewReceiptHandler(receiptService, exportService),
		Image:          handlers.NewImageHandler(imageService),
		Health:         handlers.NewHealthHandler(checker),
	}, authMiddleware)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.RequestLogger(corsMiddleware(router)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Infow("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Server failed to start", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
}
