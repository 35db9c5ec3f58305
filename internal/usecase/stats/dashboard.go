package stats

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// DashboardMonths is the length of the monthly series, current month included.
const DashboardMonths = 6

// LedgerReader is the part of the appointment ledger the dashboard reads.
type LedgerReader interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*models.Salon, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uuid.UUID,
		staffID *uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

type DashboardMonth struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Visits  int64           `json:"visits"`
}

type DashboardStaff struct {
	StaffID   uuid.UUID `json:"staff_id"`
	Name      string    `json:"name"`
	Completed int64     `json:"completed"`
}

// Dashboard mixes live ledger reads (today, monthly series, staff) with the
// cached lifetime totals.
type Dashboard struct {
	SalonID       uuid.UUID        `json:"salon_id"`
	Date          string           `json:"date"`
	TodayBookings int64            `json:"today_bookings"`
	Lifetime      *LifetimeStats   `json:"lifetime"`
	Monthly       []DashboardMonth `json:"monthly"`
	Staff         []DashboardStaff `json:"staff"`
}

type GetDashboard struct {
	ledger LedgerReader
	agg    *Aggregator
	clock  timezone.Clock
}

func NewGetDashboard(ledger LedgerReader, agg *Aggregator, clock timezone.Clock) *GetDashboard {
	if clock == nil {
		clock = timezone.SystemClock
	}
	return &GetDashboard{ledger: ledger, agg: agg, clock: clock}
}

// Execute builds the dashboard in the salon's time zone. Monthly revenue
// uses current service prices, like Recompute. Staff counts cover the same
// window as the monthly series.
func (uc *GetDashboard) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
) (*Dashboard, error) {

	if p == nil {
		return nil, httperr.Unauthorized("authentication_required")
	}
	if !p.BelongsTo(salonID) {
		return nil, httperr.NotFound("salon_not_found")
	}

	salon, err := uc.ledger.GetSalon(ctx, salonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("salon_not_found")
	}
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)

	now := uc.clock().In(loc)
	dayStart, dayEnd := timezone.DayBounds(now, loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	from := monthStart.AddDate(0, -(DashboardMonths - 1), 0)
	to := monthStart.AddDate(0, 1, 0)

	apps, err := uc.ledger.ListAppointmentsForPeriod(ctx, salonID, nil, from, to)
	if err != nil {
		return nil, err
	}

	lifetime, err := uc.agg.Get(ctx, salonID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Buckets
	// --------------------------------------------------
	monthly := make([]DashboardMonth, DashboardMonths)
	for i := range monthly {
		m := from.AddDate(0, i, 0)
		monthly[i] = DashboardMonth{Year: m.Year(), Month: int(m.Month()), Revenue: decimal.Zero}
	}

	perStaff := map[uuid.UUID]*DashboardStaff{}
	var today int64

	for _, ap := range apps {
		if appointment.Status(ap.Status) == appointment.StatusCancelled {
			continue
		}
		start := ap.StartsAt.In(loc)
		if !start.Before(dayStart) && start.Before(dayEnd) {
			today++
		}
		if appointment.Status(ap.Status) != appointment.StatusCompleted {
			continue
		}

		idx := (start.Year()-from.Year())*12 + int(start.Month()) - int(from.Month())
		if idx >= 0 && idx < DashboardMonths {
			monthly[idx].Visits++
			if ap.Service != nil {
				monthly[idx].Revenue = monthly[idx].Revenue.Add(ap.Service.PriceDkk)
			}
		}

		s, ok := perStaff[ap.StaffID]
		if !ok {
			s = &DashboardStaff{StaffID: ap.StaffID}
			if ap.Staff != nil {
				s.Name = ap.Staff.Name
			}
			perStaff[ap.StaffID] = s
		}
		s.Completed++
	}

	staff := make([]DashboardStaff, 0, len(perStaff))
	for _, s := range perStaff {
		staff = append(staff, *s)
	}
	sort.Slice(staff, func(i, j int) bool {
		if staff[i].Completed != staff[j].Completed {
			return staff[i].Completed > staff[j].Completed
		}
		return staff[i].Name < staff[j].Name
	})

	return &Dashboard{
		SalonID:       salonID,
		Date:          dayStart.Format("2006-01-02"),
		TodayBookings: today,
		Lifetime:      lifetime,
		Monthly:       monthly,
		Staff:         staff,
	}, nil
}
