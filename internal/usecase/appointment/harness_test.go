package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	ucStats "github.com/BruksfildServices01/salon-scheduler/internal/usecase/stats"
)

type harness struct {
	db      *gorm.DB
	fx      *testutil.Fixture
	clock   *testutil.MutableClock
	repo    *repository.AppointmentGormRepository
	agg     *ucStats.Aggregator
	events  *events.Recorder
	create  *CreateAppointment
	update  *UpdateAppointmentStatus
	deleter *DeleteAppointment
}

var day = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	h := &harness{
		db:     db,
		fx:     testutil.Seed(t, db),
		clock:  &testutil.MutableClock{Now: at(8, 0)},
		repo:   repository.NewAppointmentGormRepository(db),
		events: &events.Recorder{},
	}

	h.agg = ucStats.NewAggregator(repository.NewStatsGormRepository(db), nil, nil, h.clock.Clock())
	h.create = NewCreateAppointment(CreateAppointmentDeps{
		Repo:       h.repo,
		Events:     h.events,
		Clock:      h.clock.Clock(),
		BcryptCost: bcrypt.MinCost,
	})
	h.update = NewUpdateAppointmentStatus(h.repo, h.agg, nil, h.events, nil, h.clock.Clock())
	h.deleter = NewDeleteAppointment(h.repo, nil, h.events, nil, h.clock.Clock())
	return h
}

func (h *harness) input(staffID uuid.UUID, start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		SalonID:   h.fx.Salon.ID,
		StaffID:   staffID,
		ServiceID: h.fx.Service.ID,
		Contact:   domain.Contact{Name: "Anna Jensen", Phone: "12 34 56 78"},
		StartsAt:  start,
	}
}

func (h *harness) book(t *testing.T, start time.Time) *models.Appointment {
	t.Helper()
	ap, err := h.create.Execute(context.Background(), h.fx.Principal, h.input(h.fx.Staff.ID, start))
	require.NoError(t, err)
	return ap
}

func (h *harness) setStatus(id uuid.UUID, status string) (*models.Appointment, error) {
	return h.update.Execute(context.Background(), h.fx.Principal, UpdateStatusInput{
		SalonID:       h.fx.Salon.ID,
		AppointmentID: id,
		Status:        status,
	})
}

func (h *harness) stats(t *testing.T) *ucStats.LifetimeStats {
	t.Helper()
	st, err := h.agg.Get(context.Background(), h.fx.Salon.ID)
	require.NoError(t, err)
	return st
}
