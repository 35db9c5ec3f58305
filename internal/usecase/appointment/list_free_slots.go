package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ListFreeSlots lists the bookable starts of a staff member on one day,
// walking the salon's opening hours in steps of the service duration.
type ListFreeSlots struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListFreeSlots(repo domain.Repository, clock timezone.Clock) *ListFreeSlots {
	if clock == nil {
		clock = timezone.SystemClock
	}
	return &ListFreeSlots{repo: repo, clock: clock}
}

func (uc *ListFreeSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	_, loc, err := salonLocation(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID); err != nil {
		return nil, notFoundAs(err, "staff_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}

	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	oh, err := uc.repo.GetOpeningHours(ctx, in.SalonID, int(date.Weekday()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.TimeSlot{}, nil
	}
	if err != nil {
		return nil, err
	}

	window, open := domain.ResolveOpeningWindow(oh, date, loc)
	if !open {
		return []domain.TimeSlot{}, nil
	}

	busy, err := uc.repo.ListBusyForStaff(ctx, in.StaffID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	slots := domain.FreeSlots(
		window.Start,
		window.End,
		time.Duration(service.DurationMinutes)*time.Minute,
		window.BreakStart,
		window.BreakEnd,
		toIntervals(busy),
	)

	now := uc.clock()
	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Start.Before(now) {
			continue
		}
		out = append(out, domain.TimeSlot{Start: s.Start.In(loc), End: s.End.In(loc)})
	}
	return out, nil
}
