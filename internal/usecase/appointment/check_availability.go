package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type AvailabilityWindow struct {
	SalonID uuid.UUID
	StaffID uuid.UUID
	Start   time.Time
	End     time.Time
}

// CheckAvailability is the advisory read check. Create re-runs it under a
// lock, so a positive answer here is not a reservation.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in AvailabilityWindow,
) (*domain.Availability, error) {

	if in.Start.IsZero() || !in.End.After(in.Start) {
		return nil, httperr.Validation("invalid_window", map[string]string{
			"end": "must be after start",
		})
	}

	if _, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID); err != nil {
		return nil, notFoundAs(err, "staff_not_found")
	}

	conflict, err := uc.repo.FindConflict(ctx, in.StaffID, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		id := conflict.ID
		return &domain.Availability{Available: false, ConflictID: &id}, nil
	}

	return &domain.Availability{Available: true}, nil
}
