package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/config"
	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/events"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/briefing"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"
	vendorjobs "github.com/latsoguy/latso-mvp-demo/internal/modules/vendors/jobs"
	"github.com/latsoguy/latso-mvp-demo/internal/reliability"
	"github.com/latsoguy/latso-mvp-demo/internal/scheduler"
	"github.com/latsoguy/latso-mvp-demo/internal/server"
	"github.com/latsoguy/latso-mvp-demo/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting LATSO dashboard API")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(
		vendors.Schema,
		projects.Schema,
		risks.Schema,
		briefing.Schema,
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Event bus for dashboard live updates
	bus := events.NewBus(log)

	// Repositories
	projectRepo := projects.NewRepository(db.Conn(), log)
	vendorRepo := vendors.NewRepository(db.Conn(), log)
	riskRepo := risks.NewRepository(db.Conn(), cfg.BaselineDelayWeeks, log)
	briefRepo := briefing.NewRepository(db.Conn(), log)

	briefService := briefing.NewService(projectRepo, riskRepo, briefRepo, bus, cfg.RemainingDays, log)

	// Optional backup pipeline
	var backupService *reliability.BackupService
	if cfg.BackupDir != "" {
		var uploader *reliability.S3Uploader
		if cfg.BackupS3Bucket != "" {
			uploader, err = reliability.NewS3Uploader(context.Background(), reliability.S3Config{
				Bucket:    cfg.BackupS3Bucket,
				Endpoint:  cfg.BackupS3Endpoint,
				Region:    cfg.BackupS3Region,
				AccessKey: cfg.BackupS3AccessKey,
				SecretKey: cfg.BackupS3SecretKey,
			}, log)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to initialize S3 uploader")
			}
		}
		backupService = reliability.NewBackupService(db, cfg.BackupDir, uploader, bus, log)
	}

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	if err := registerJobs(sched, vendorRepo, backupService, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Log:           log,
		DB:            db,
		Cfg:           cfg,
		Bus:           bus,
		ProjectRepo:   projectRepo,
		VendorRepo:    vendorRepo,
		RiskRepo:      riskRepo,
		BriefService:  briefService,
		BackupService: backupService,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	vendorRepo *vendors.Repository,
	backupService *reliability.BackupService,
	log zerolog.Logger,
) error {
	// Nightly composite score recalculation keeps stored scores consistent
	// with the sub-scores after manual database edits
	if err := sched.AddJob("0 0 2 * * *", vendorjobs.NewScoreRecalcJob(vendorRepo, log)); err != nil {
		return err
	}

	// Daily backup after the recalc window
	if backupService != nil {
		if err := sched.AddJob("0 0 3 * * *", reliability.NewBackupJob(backupService)); err != nil {
			return err
		}
	}

	return nil
}
