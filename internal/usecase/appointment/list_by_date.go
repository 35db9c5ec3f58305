package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the salon's appointments on a "2006-01-02" date in the
// salon's timezone, optionally for one staff member.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
	staffID *uuid.UUID,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if err := requireMember(p, salonID); err != nil {
		return nil, err
	}

	_, loc, err := salonLocation(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.Validation("invalid_date", map[string]string{
			"date": "expected YYYY-MM-DD",
		})
	}

	start, end := timezone.DayBounds(day, loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		salonID,
		staffID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.ToAppointmentList(appointments, loc), nil
}
