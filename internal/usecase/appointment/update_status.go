package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// StatsUpdater receives completed-ness changes of appointments.
type StatsUpdater interface {
	Increment(ctx context.Context, salonID uuid.UUID, revenue decimal.Decimal) error
	Decrement(ctx context.Context, salonID uuid.UUID, revenue decimal.Decimal) error
}

type UpdateStatusInput struct {
	SalonID       uuid.UUID
	AppointmentID uuid.UUID
	Status        string
}

type UpdateAppointmentStatus struct {
	repo   domain.Repository
	stats  StatsUpdater
	audit  *audit.Dispatcher
	events events.Publisher
	log    *logger.Logger
	clock  timezone.Clock
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	stats StatsUpdater,
	auditDispatcher *audit.Dispatcher,
	pub events.Publisher,
	log *logger.Logger,
	clock timezone.Clock,
) *UpdateAppointmentStatus {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &UpdateAppointmentStatus{
		repo:   repo,
		stats:  stats,
		audit:  auditDispatcher,
		events: pub,
		log:    log.With("usecase", "UpdateAppointmentStatus"),
		clock:  clock,
	}
}

// Execute changes the status under a row lock. Entering or leaving
// completed then adjusts the salon stats by the service's current price.
// That adjustment runs after commit and its failure never fails the call.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	p *auth.Principal,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	if err := requireMember(p, in.SalonID); err != nil {
		return nil, err
	}

	to, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, httperr.Validation("invalid_status", map[string]string{
			"status": "must be booked, cancelled or completed",
		})
	}

	now := uc.clock()

	var (
		ap      *models.Appointment
		from    domain.Status
		effect  int
		revenue decimal.Decimal
	)

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.LockAppointment(ctx, in.SalonID, in.AppointmentID)
		if err != nil {
			return notFoundAs(err, "appointment_not_found")
		}

		from = domain.Status(ap.Status)
		effect, err = domain.ApplyStatus(ap, to, now)
		if err != nil {
			return err
		}
		if from == to {
			return nil
		}

		if effect != 0 {
			service, err := tx.GetService(ctx, in.SalonID, ap.ServiceID)
			if err != nil {
				return err
			}
			revenue = service.PriceDkk
		}

		return tx.UpdateAppointmentStatus(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	if from == to {
		return ap, nil
	}

	// --------------------------------------------------
	// Stats (best effort, after commit)
	// --------------------------------------------------
	if effect != 0 && uc.stats != nil {
		var statsErr error
		if effect > 0 {
			statsErr = uc.stats.Increment(ctx, in.SalonID, revenue)
		} else {
			statsErr = uc.stats.Decrement(ctx, in.SalonID, revenue)
		}

		if statsErr != nil {
			uc.log.Error("stats update failed, ledger kept",
				"salon_id", in.SalonID,
				"appointment_id", ap.ID,
				"effect", effect,
				"revenue", revenue.String(),
				"error", statsErr,
			)
			uc.audit.Dispatch(audit.Event{
				SalonID:  in.SalonID,
				Actor:    "system",
				Action:   audit.ActionStatsUpdateFailed,
				Entity:   audit.EntityAppointment,
				EntityID: &ap.ID,
				Metadata: map[string]any{
					"effect":  effect,
					"revenue": revenue.String(),
					"error":   statsErr.Error(),
				},
			})
		}
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		Actor:    p.UserID,
		Action:   audit.ActionAppointmentStatus,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "to": to},
	})
	publish(ctx, uc.events, uc.log, events.TypeAppointmentStatusChanged, ap, now)

	return ap, nil
}
