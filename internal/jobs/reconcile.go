// Package jobs runs background maintenance on a schedule.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/reports"
)

type Reconciler interface {
	RunAll(ctx context.Context) (*reports.DriftReport, error)
}

// ReconcileScheduler recomputes every salon's stats on a cron spec.
type ReconcileScheduler struct {
	cron    *cron.Cron
	rec     Reconciler
	log     *logger.Logger
	timeout time.Duration
}

func NewReconcileScheduler(rec Reconciler, log *logger.Logger) *ReconcileScheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileScheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		rec:     rec,
		log:     log.With("job", "stats_reconcile"),
		timeout: 30 * time.Minute,
	}
}

// Start registers the job and starts the scheduler. spec uses the standard
// five-field cron syntax, e.g. "0 3 * * *".
func (s *ReconcileScheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("reconcile scheduler started", "spec", spec)
	return nil
}

// RunOnce is one scheduled run. A tick that fires while the previous run is
// still going is skipped.
func (s *ReconcileScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.rec.RunAll(ctx)
	if err != nil {
		s.log.Error("reconcile run failed", "error", err)
		return
	}
	if report.DriftCount() > 0 {
		s.log.Warn("reconcile found drift",
			"salons", len(report.Salons),
			"drifted", report.DriftCount(),
			"failed", report.ErrorCount(),
		)
	}
}

// Stop waits for a running job to finish or ctx to expire.
func (s *ReconcileScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
