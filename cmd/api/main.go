package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "time/tzdata"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/jobs"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/reports"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucStats "github.com/BruksfildServices01/salon-scheduler/internal/usecase/stats"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database unavailable", "error", err)
	}

	// ======================================================
	// Optional integrations
	// ======================================================
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RedisAddr != "" {
		rp, err := events.NewRedisPublisher(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			log.Warn("redis unavailable, calendar events disabled", "error", err)
		} else {
			publisher = rp
		}
	}
	defer publisher.Close()

	var notifier *notify.Dispatcher
	if cfg.TwilioEnabled() {
		sender := notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		notifier = notify.NewDispatcher(sender, log, 100)
		defer notifier.Close()
	}

	var archive reports.Archive
	if cfg.ReportArchiveEnabled() {
		archive = reports.NewS3Archive(cfg.S3Region, cfg.S3ReportBucket, cfg.AWSAccessKeyID, cfg.AWSSecretKey)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	// ======================================================
	// Stats reconciliation
	// ======================================================
	statsRepo := infraRepo.NewStatsGormRepository(db)
	aggregator := ucStats.NewAggregator(statsRepo, auditDispatcher, log, timezone.SystemClock)
	reconciler := ucStats.NewReconciler(statsRepo, aggregator, archive, cfg.ReconcileConcurrency, log)

	scheduler := jobs.NewReconcileScheduler(reconciler, log)
	if cfg.ReconcileCron != "" {
		if err := scheduler.Start(cfg.ReconcileCron); err != nil {
			log.Fatal("invalid RECONCILE_CRON", "spec", cfg.ReconcileCron, "error", err)
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    auditDispatcher,
		Events:   publisher,
		Notifier: notifier,
		Clock:    timezone.SystemClock,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	scheduler.Stop(ctx)
}
