package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ptslot/internal/auth"
	"ptslot/internal/booking"
	"ptslot/internal/config"
	"ptslot/internal/db"
	"ptslot/internal/logger"
	"ptslot/internal/notify"
	"ptslot/internal/reminder"
	"ptslot/internal/schedule"
	"ptslot/internal/server"
	"ptslot/internal/sessionpack"
	"ptslot/internal/user"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// @title PT Slot API
// @version 1.0
// @description Booking API for a personal trainer's sessions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatalf("Failed to configure logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("Starting PT Slot", "timezone", cfg.TrainerTimezone, "push_enabled", cfg.PushEnabled())

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.RefreshSecret())
	if err != nil {
		logger.Fatalf("Failed to set up tokens: %v", err)
	}

	loc := cfg.Location()

	emailSender := notify.NewSMTPSender(cfg.EmailFrom, cfg.EmailFromName, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	var pushSender notify.Sender
	if cfg.PushEnabled() {
		pushSender = notify.NewOneSignalSender(cfg.OneSignalAppID, cfg.OneSignalAPIKey)
	}
	queue := notify.NewQueue(rdb, emailSender, pushSender)

	userRepo := user.NewRepository(database)
	scheduleRepo := schedule.NewRepository(database)
	bookingRepo := booking.NewRepository(database)
	packRepo := sessionpack.NewRepository(database)

	userService := user.NewService(userRepo, tokens, cfg.TrainerEmail)
	scheduleService := schedule.NewService(scheduleRepo, loc)
	bookingService := booking.NewService(bookingRepo, scheduleRepo, notify.NewBookingNotifier(queue, userRepo), booking.Config{
		Location: loc,
		Venue:    cfg.TrainerLocation,
	})
	packService := sessionpack.NewService(packRepo, userRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go queue.Start(ctx)

	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	daily := reminder.New(bookingRepo, userRepo, queue, loc)
	mux := asynq.NewServeMux()
	daily.Register(mux)

	worker := reminder.NewServer(redisOpt)
	if err := worker.Start(mux); err != nil {
		logger.Fatalf("Failed to start task worker: %v", err)
	}

	scheduler, err := reminder.NewScheduler(redisOpt, cfg.ReminderCron, loc)
	if err != nil {
		logger.Fatalf("Failed to set up reminder schedule: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	logger.Info("Daily reminder scheduled", "cron", cfg.ReminderCron)

	srv := server.New(ctx, cfg, server.Deps{
		Tokens:   tokens,
		Users:    user.NewHandler(userService),
		Schedule: schedule.NewHandler(scheduleService),
		Bookings: booking.NewHandler(bookingService),
		Packs:    sessionpack.NewHandler(packService),
		Checks: map[string]server.Check{
			"postgres": database.PingContext,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil {
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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	scheduler.Shutdown()
	worker.Shutdown()
	cancel()

	logger.Info("Server stopped")
}
