package stats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/stats"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// LifetimeStats is the dashboard view of a salon's cached totals.
type LifetimeStats struct {
	SalonID      uuid.UUID       `json:"salon_id"`
	TotalVisits  int64           `json:"total_visits"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	LastUpdated  *time.Time      `json:"last_updated"`
}

type RecomputeResult struct {
	SalonID uuid.UUID    `json:"salon_id"`
	Before  stats.Totals `json:"before"`
	After   stats.Totals `json:"after"`
}

func (r RecomputeResult) Drifted() bool {
	return !r.Before.Equal(r.After)
}

// Aggregator owns every write to salon_stats.
type Aggregator struct {
	repo  stats.Repository
	audit *audit.Dispatcher
	log   *logger.Logger
	clock timezone.Clock
}

func NewAggregator(
	repo stats.Repository,
	auditDispatcher *audit.Dispatcher,
	log *logger.Logger,
	clock timezone.Clock,
) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	return &Aggregator{
		repo:  repo,
		audit: auditDispatcher,
		log:   log.With("component", "StatsAggregator"),
		clock: clock,
	}
}

func toTotals(row *models.SalonStats) stats.Totals {
	return stats.Totals{Visits: row.TotalVisits, Revenue: row.TotalRevenue}
}

func (a *Aggregator) store(ctx context.Context, tx stats.Repository, row *models.SalonStats, t stats.Totals) error {
	row.TotalVisits = t.Visits
	row.TotalRevenue = t.Revenue
	row.LastUpdated = a.clock().UTC()
	return tx.Save(ctx, row)
}

// Increment adds one completed visit worth revenue. The row is created on
// first use.
func (a *Aggregator) Increment(ctx context.Context, salonID uuid.UUID, revenue decimal.Decimal) error {
	if _, err := stats.ApplyIncrement(stats.Totals{}, revenue); err != nil {
		return err
	}

	return a.repo.InTx(ctx, func(tx stats.Repository) error {
		row, err := tx.LockOrCreate(ctx, salonID)
		if err != nil {
			return err
		}

		next, err := stats.ApplyIncrement(toTotals(row), revenue)
		if err != nil {
			return err
		}
		return a.store(ctx, tx, row, next)
	})
}

// Decrement removes one completed visit worth revenue, clamping at zero.
// Hitting the clamp means the cache has drifted from the ledger; it is
// logged and audited, not returned.
func (a *Aggregator) Decrement(ctx context.Context, salonID uuid.UUID, revenue decimal.Decimal) error {
	if _, _, err := stats.ApplyDecrement(stats.Totals{}, revenue); err != nil {
		return err
	}

	var (
		before stats.Totals
		drift  bool
	)
	err := a.repo.InTx(ctx, func(tx stats.Repository) error {
		row, err := tx.LockOrCreate(ctx, salonID)
		if err != nil {
			return err
		}

		before = toTotals(row)
		var next stats.Totals
		next, drift, err = stats.ApplyDecrement(before, revenue)
		if err != nil {
			return err
		}
		return a.store(ctx, tx, row, next)
	})
	if err != nil {
		return err
	}

	if drift {
		a.log.Warn("stats drift detected, decrement clamped at zero",
			"salon_id", salonID,
			"visits", before.Visits,
			"revenue", before.Revenue.String(),
			"delta", revenue.String(),
		)
		a.audit.Dispatch(audit.Event{
			SalonID: salonID,
			Actor:   "system",
			Action:  audit.ActionStatsDrift,
			Entity:  audit.EntitySalonStats,
			Metadata: map[string]any{
				"visits":  before.Visits,
				"revenue": before.Revenue.String(),
				"delta":   revenue.String(),
			},
		})
	}
	return nil
}

// Recompute rebuilds the totals from completed appointments at current
// service prices and overwrites the cached row.
func (a *Aggregator) Recompute(ctx context.Context, salonID uuid.UUID) (*RecomputeResult, error) {
	res := &RecomputeResult{SalonID: salonID}

	err := a.repo.InTx(ctx, func(tx stats.Repository) error {
		row, err := tx.LockOrCreate(ctx, salonID)
		if err != nil {
			return err
		}
		res.Before = toTotals(row)

		sum, err := tx.SumCompleted(ctx, salonID)
		if err != nil {
			return err
		}
		res.After = sum

		return a.store(ctx, tx, row, sum)
	})
	if err != nil {
		return nil, err
	}

	if res.Drifted() {
		a.log.Info("stats recomputed with drift",
			"salon_id", salonID,
			"visits_before", res.Before.Visits,
			"visits_after", res.After.Visits,
			"revenue_before", res.Before.Revenue.String(),
			"revenue_after", res.After.Revenue.String(),
		)
	}
	return res, nil
}

// Get reads the cached totals. A salon without a row reports zeros.
func (a *Aggregator) Get(ctx context.Context, salonID uuid.UUID) (*LifetimeStats, error) {
	row, err := a.repo.Get(ctx, salonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &LifetimeStats{SalonID: salonID, TotalRevenue: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	updated := row.LastUpdated
	return &LifetimeStats{
		SalonID:      salonID,
		TotalVisits:  row.TotalVisits,
		TotalRevenue: row.TotalRevenue,
		LastUpdated:  &updated,
	}, nil
}
