package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const maxPublicRange = 62 * 24 * time.Hour

// ListPublicBusy shows the booking page which slots are taken, without
// any customer data.
type ListPublicBusy struct {
	repo domain.Repository
}

func NewListPublicBusy(repo domain.Repository) *ListPublicBusy {
	return &ListPublicBusy{repo: repo}
}

func (uc *ListPublicBusy) Execute(
	ctx context.Context,
	salonID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]dto.BusyIntervalDTO, error) {

	if !to.After(from) || to.Sub(from) > maxPublicRange {
		return nil, httperr.Validation("invalid_range", map[string]string{
			"to": "must be after from and within 62 days",
		})
	}

	_, loc, err := salonLocation(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListBusyForSalon(ctx, salonID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BusyIntervalDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.BusyIntervalDTO{
			ID:       ap.ID,
			StaffID:  ap.StaffID,
			StartsAt: ap.StartsAt.In(loc),
			EndsAt:   ap.EndsAt.In(loc),
		})
	}
	return out, nil
}
