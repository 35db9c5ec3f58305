// Command reconcile rebuilds cached salon stats from the appointment ledger.
//
//	reconcile                  # every salon
//	reconcile -salon <uuid>    # one salon, repeatable
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/reports"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucStats "github.com/BruksfildServices01/salon-scheduler/internal/usecase/stats"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	if v = strings.TrimSpace(v); v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var salons idList
	var concurrency int
	var archiveReport bool
	var timeout time.Duration
	flag.Var(&salons, "salon", "salon id to reconcile (repeatable); all salons when omitted")
	flag.IntVar(&concurrency, "concurrency", 0, "salons recomputed in parallel (default RECONCILE_CONCURRENCY)")
	flag.BoolVar(&archiveReport, "archive", true, "upload the drift report when S3 is configured")
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "overall deadline")
	flag.Parse()

	cfg := config.Load()
	if concurrency <= 0 {
		concurrency = cfg.ReconcileConcurrency
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ids := make([]uuid.UUID, 0, len(salons))
	for _, s := range salons {
		id, err := uuid.Parse(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid salon id %q\n", s)
			os.Exit(2)
		}
		ids = append(ids, id)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database unavailable", "error", err)
	}

	var archive reports.Archive
	if archiveReport && cfg.ReportArchiveEnabled() {
		archive = reports.NewS3Archive(cfg.S3Region, cfg.S3ReportBucket, cfg.AWSAccessKeyID, cfg.AWSSecretKey)
	}

	statsRepo := infraRepo.NewStatsGormRepository(db)
	agg := ucStats.NewAggregator(statsRepo, nil, log, timezone.SystemClock)
	rec := ucStats.NewReconciler(statsRepo, agg, archive, concurrency, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var report *reports.DriftReport
	if len(ids) > 0 {
		report, err = rec.Run(ctx, ids)
	} else {
		report, err = rec.RunAll(ctx)
	}
	if report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	}
	if err != nil {
		log.Error("reconcile failed", "error", err)
		os.Exit(1)
	}
	if report.ErrorCount() > 0 {
		os.Exit(1)
	}
}
