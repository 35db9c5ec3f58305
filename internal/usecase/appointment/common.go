package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// pastGrace is how far in the past a new booking may start.
const pastGrace = 5 * time.Minute

// notFoundAs turns a missing row into a NotFound business error.
func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code)
	}
	return err
}

// requireMember rejects missing principals and principals of other salons.
// A foreign salon looks the same as a missing one.
func requireMember(p *auth.Principal, salonID uuid.UUID) error {
	if p == nil {
		return httperr.Unauthorized("authentication_required")
	}
	if !p.BelongsTo(salonID) {
		return httperr.NotFound("salon_not_found")
	}
	return nil
}

func salonLocation(ctx context.Context, repo domain.Repository, salonID uuid.UUID) (*models.Salon, *time.Location, error) {
	salon, err := repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, nil, notFoundAs(err, "salon_not_found")
	}
	return salon, timezone.Location(salon.Timezone), nil
}

func publish(ctx context.Context, pub events.Publisher, log *logger.Logger, typ string, ap *models.Appointment, now time.Time) {
	if pub == nil {
		return
	}
	err := pub.Publish(ctx, events.Event{
		Type:          typ,
		SalonID:       ap.SalonID,
		AppointmentID: ap.ID,
		StaffID:       ap.StaffID,
		StartsAt:      ap.StartsAt.UTC(),
		EndsAt:        ap.EndsAt.UTC(),
		Status:        ap.Status,
		OccurredAt:    now.UTC(),
	})
	if err != nil {
		log.Warn("publish event failed", "type", typ, "appointment_id", ap.ID, "error", err)
	}
}

func toIntervals(apps []models.Appointment) []domain.Interval {
	out := make([]domain.Interval, 0, len(apps))
	for _, ap := range apps {
		out = append(out, domain.Interval{ID: ap.ID, Start: ap.StartsAt, End: ap.EndsAt})
	}
	return out
}
