package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
	staffID *uuid.UUID,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if err := requireMember(p, salonID); err != nil {
		return nil, err
	}

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.Validation("invalid_year_or_month", map[string]string{
			"month": "expected year 2000-2100 and month 1-12",
		})
	}

	_, loc, err := salonLocation(ctx, uc.repo, salonID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

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
