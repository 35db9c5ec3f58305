package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type DeleteAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events events.Publisher
	log    *logger.Logger
	clock  timezone.Clock
}

func NewDeleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	pub events.Publisher,
	log *logger.Logger,
	clock timezone.Clock,
) *DeleteAppointment {
	if log == nil {
		log = logger.Nop()
	}
	if clock == nil {
		clock = timezone.SystemClock
	}
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &DeleteAppointment{
		repo:   repo,
		audit:  auditDispatcher,
		events: pub,
		log:    log.With("usecase", "DeleteAppointment"),
		clock:  clock,
	}
}

// Execute removes a booked or cancelled appointment. Completed ones are
// part of the revenue record and cannot be deleted.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
	appointmentID uuid.UUID,
) error {

	if err := requireMember(p, salonID); err != nil {
		return err
	}

	var deleted *models.Appointment
	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		ap, err := tx.LockAppointment(ctx, salonID, appointmentID)
		if err != nil {
			return notFoundAs(err, "appointment_not_found")
		}

		if err := domain.CanDelete(domain.Status(ap.Status)); err != nil {
			return err
		}

		if err := tx.DeleteAppointment(ctx, ap.ID); err != nil {
			return err
		}
		deleted = ap
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		Actor:    p.UserID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   audit.EntityAppointment,
		EntityID: &deleted.ID,
		Metadata: map[string]any{"status": deleted.Status},
	})
	publish(ctx, uc.events, uc.log, events.TypeAppointmentDeleted, deleted, uc.clock())

	return nil
}
