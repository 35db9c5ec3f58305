package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type GetLifetimeStats struct {
	agg *Aggregator
}

func NewGetLifetimeStats(agg *Aggregator) *GetLifetimeStats {
	return &GetLifetimeStats{agg: agg}
}

func (uc *GetLifetimeStats) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
) (*LifetimeStats, error) {

	if p == nil {
		return nil, httperr.Unauthorized("authentication_required")
	}
	if !p.BelongsTo(salonID) {
		return nil, httperr.NotFound("salon_not_found")
	}

	return uc.agg.Get(ctx, salonID)
}
