package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/alvimrfg/sistema-socio-40graus/docs"
	"github.com/alvimrfg/sistema-socio-40graus/internal/allowance"
	"github.com/alvimrfg/sistema-socio-40graus/internal/booking"
	"github.com/alvimrfg/sistema-socio-40graus/internal/config"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
	"github.com/alvimrfg/sistema-socio-40graus/internal/email"
	"github.com/alvimrfg/sistema-socio-40graus/internal/finance"
	"github.com/alvimrfg/sistema-socio-40graus/internal/holiday"
	"github.com/alvimrfg/sistema-socio-40graus/internal/inventory"
	"github.com/alvimrfg/sistema-socio-40graus/internal/logger"
	"github.com/alvimrfg/sistema-socio-40graus/internal/member"
	"github.com/alvimrfg/sistema-socio-40graus/internal/report"
	"github.com/alvimrfg/sistema-socio-40graus/internal/server"
	"github.com/alvimrfg/sistema-socio-40graus/internal/settings"
	"github.com/alvimrfg/sistema-socio-40graus/internal/user"
)

// @title Sócio 40 Graus API
// @version 1.0
// @description Membership, stay-day allowance and accommodation booking API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init()
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Info("Starting Sócio 40 Graus application")

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	emailService := email.New(email.Config{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	}, rdb)
	logger.Info("Email service initialized")

	txRunner := db.NewTxRunner(database, cfg.TxMaxAttempts)

	memberRepo := member.NewRepository(database)
	memberService := member.NewService(memberRepo, member.PlanTable(cfg.PlanAllowanceDays))

	inventoryService := inventory.NewService(inventory.NewRepository(database))

	bookingService := booking.NewService(
		txRunner,
		database,
		booking.NewRepository(database),
		allowance.NewLedger(),
		inventory.NewLedger(),
		memberRepo,
		emailService,
	)

	financeService := finance.NewService(txRunner, finance.NewRepository(database), memberRepo, time.Now)
	settingsService := settings.NewService(settings.NewRepository(database))
	holidayService := holiday.NewService(holiday.NewRepository(database))

	reportService := report.NewService(
		report.NewRepository(database),
		settingsService,
		report.NewRedisCache(rdb),
		report.Options{
			OccupancyWindowDays:  cfg.OccupancyWindowDays,
			UpcomingCheckinsDays: cfg.UpcomingCheckinsDays,
			CacheTTL:             cfg.ReportCacheTTL,
		},
	)

	userService := user.NewService(user.NewRepository(database), cfg.JWTSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)

	srv := server.New(cfg, server.Handlers{
		User:      user.NewHandler(userService),
		Member:    member.NewHandler(memberService),
		Inventory: inventory.NewHandler(inventoryService),
		Booking:   booking.NewHandler(bookingService),
		Finance:   finance.NewHandler(financeService),
		Settings:  settings.NewHandler(settingsService),
		Holiday:   holiday.NewHandler(holidayService),
		Report:    report.NewHandler(reportService),
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
