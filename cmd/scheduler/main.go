package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/lamf-engine/internal/config"
	"github.com/segyhp/lamf-engine/internal/repository"
	"github.com/segyhp/lamf-engine/internal/scheduler"
	"github.com/segyhp/lamf-engine/internal/service"
	"github.com/segyhp/lamf-engine/pkg/logger"
	"github.com/segyhp/lamf-engine/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, "lamf-scheduler")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logr.Sync()
	zap.ReplaceGlobals(logr)

	logr.Info("Starting LAMF scheduler...")

	db, err := sqlx.Connect(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		logr.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	collaterals := service.NewCollateralService(repository.NewStore(db), validation.New(), logr.Named("collaterals"))

	// Initialize cron scheduler
	c := scheduler.NewCron(cfg.GetSchedulerLocation(), logr.Named("cron"))

	job := scheduler.NewReconcileJob(collaterals, 30*time.Minute, logr.Named("jobs"))
	if _, err := scheduler.Register(c, cfg.Scheduler.ReconcileSpec, job, logr); err != nil {
		logr.Fatal("Error scheduling reconciliation job", zap.Error(err))
	}

	// Start the scheduler
	c.Start()
	logr.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	logr.Info("Scheduler stopped")
}
