package stats

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/stats"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/reports"
)

// ======================================================
// RECOMPUTE (administrative, one salon)
// ======================================================

type RecomputeStats struct {
	agg   *Aggregator
	audit *audit.Dispatcher
}

func NewRecomputeStats(agg *Aggregator, auditDispatcher *audit.Dispatcher) *RecomputeStats {
	return &RecomputeStats{agg: agg, audit: auditDispatcher}
}

func (uc *RecomputeStats) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
) (*RecomputeResult, error) {

	if !p.BelongsTo(salonID) || !p.CanManageStats() {
		return nil, httperr.Unauthorized("stats_recompute_not_allowed")
	}

	res, err := uc.agg.Recompute(ctx, salonID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: salonID,
		Actor:   p.UserID,
		Action:  audit.ActionStatsRecomputed,
		Entity:  audit.EntitySalonStats,
		Metadata: map[string]any{
			"visits_before":  res.Before.Visits,
			"visits_after":   res.After.Visits,
			"revenue_before": res.Before.Revenue.String(),
			"revenue_after":  res.After.Revenue.String(),
		},
	})

	return res, nil
}

// ======================================================
// RECONCILER (all salons)
// ======================================================

// Reconciler recomputes many salons with bounded concurrency and archives
// a drift report of the run.
type Reconciler struct {
	repo        stats.Repository
	agg         *Aggregator
	archive     reports.Archive
	concurrency int
	log         *logger.Logger
}

func NewReconciler(
	repo stats.Repository,
	agg *Aggregator,
	archive reports.Archive,
	concurrency int,
	log *logger.Logger,
) *Reconciler {
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{
		repo:        repo,
		agg:         agg,
		archive:     archive,
		concurrency: concurrency,
		log:         log.With("component", "StatsReconciler"),
	}
}

func (r *Reconciler) RunAll(ctx context.Context) (*reports.DriftReport, error) {
	ids, err := r.repo.ListSalonIDs(ctx)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, ids)
}

// Run recomputes the given salons. A failing salon is recorded in the
// report and does not stop the others.
func (r *Reconciler) Run(ctx context.Context, salonIDs []uuid.UUID) (*reports.DriftReport, error) {
	report := &reports.DriftReport{
		StartedAt: r.agg.clock().UTC(),
		Salons:    make([]reports.SalonResult, len(salonIDs)),
	}

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, id := range salonIDs {
		i, id := i, id
		g.Go(func() error {
			line := reports.SalonResult{SalonID: id}

			res, err := r.agg.Recompute(ctx, id)
			if err != nil {
				r.log.Error("recompute failed", "salon_id", id, "error", err)
				line.Error = err.Error()
			} else {
				line.VisitsBefore = res.Before.Visits
				line.RevenueBefore = res.Before.Revenue
				line.VisitsAfter = res.After.Visits
				line.RevenueAfter = res.After.Revenue
				line.Drifted = res.Drifted()
			}

			report.Salons[i] = line
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = r.agg.clock().UTC()

	r.log.Info("stats reconciliation finished",
		"salons", len(salonIDs),
		"drifted", report.DriftCount(),
		"failed", report.ErrorCount(),
	)

	if r.archive != nil {
		if err := r.archive.Put(ctx, *report); err != nil {
			r.log.Error("archive drift report failed", "key", report.Key(), "error", err)
			return report, err
		}
	}

	return report, nil
}
