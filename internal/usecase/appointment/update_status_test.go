package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestScenario_CompleteThenCancelRestoresStats(t *testing.T) {
	h := newHarness(t)

	// GIVEN: a 09:00-09:30 booking for a 350 service
	ap := h.book(t, at(9, 0))
	baseline := h.stats(t)
	assert.Equal(t, int64(0), baseline.TotalVisits)

	// WHEN: it is completed after its start
	h.clock.Now = at(9, 10)
	done, err := h.setStatus(ap.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	require.NotNil(t, done.CompletedAt)

	// THEN: stats go up by one visit and 350
	st := h.stats(t)
	assert.Equal(t, int64(1), st.TotalVisits)
	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(350)), st.TotalRevenue.String())

	// WHEN: it is cancelled as a correction
	_, err = h.setStatus(ap.ID, "cancelled")
	require.NoError(t, err)

	// THEN: stats are back at baseline
	st = h.stats(t)
	assert.Equal(t, baseline.TotalVisits, st.TotalVisits)
	assert.True(t, st.TotalRevenue.Equal(baseline.TotalRevenue))
}

func TestCompleteFuture_InvalidTransition(t *testing.T) {
	h := newHarness(t)
	ap := h.book(t, at(9, 0))

	_, err := h.setStatus(ap.ID, "completed")

	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
	assert.True(t, httperr.IsBusiness(err, "appointment_not_started"))

	st := h.stats(t)
	assert.Equal(t, int64(0), st.TotalVisits)
	assert.True(t, st.TotalRevenue.IsZero())

	var stored models.Appointment
	require.NoError(t, h.db.First(&stored, "id = ?", ap.ID).Error)
	assert.Equal(t, "booked", stored.Status)
}

func TestCancelledIsTerminal(t *testing.T) {
	h := newHarness(t)
	ap := h.book(t, at(9, 0))

	_, err := h.setStatus(ap.ID, "cancelled")
	require.NoError(t, err)

	h.clock.Now = at(10, 0)
	_, err = h.setStatus(ap.ID, "completed")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))

	_, err = h.setStatus(ap.ID, "booked")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition))
}

func TestSameStatusIsNoop(t *testing.T) {
	h := newHarness(t)
	ap := h.book(t, at(9, 0))
	h.clock.Now = at(9, 10)

	_, err := h.setStatus(ap.ID, "completed")
	require.NoError(t, err)
	_, err = h.setStatus(ap.ID, "completed")
	require.NoError(t, err)

	assert.Equal(t, int64(1), h.stats(t).TotalVisits)
}

func TestUpdateStatus_UnknownStatusAndAppointment(t *testing.T) {
	h := newHarness(t)
	ap := h.book(t, at(9, 0))

	_, err := h.setStatus(ap.ID, "scheduled")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = h.setStatus(uuid.New(), "cancelled")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

type failingStats struct{ calls int }

func (f *failingStats) Increment(context.Context, uuid.UUID, decimal.Decimal) error {
	f.calls++
	return errors.New("stats store down")
}

func (f *failingStats) Decrement(context.Context, uuid.UUID, decimal.Decimal) error {
	f.calls++
	return errors.New("stats store down")
}

func TestStatsFailureDoesNotFailStatusChange(t *testing.T) {
	h := newHarness(t)
	core, logs := observer.New(zapcore.ErrorLevel)
	fs := &failingStats{}
	uc := NewUpdateAppointmentStatus(h.repo, fs, nil, nil, logger.FromZap(zap.New(core)), h.clock.Clock())

	ap := h.book(t, at(9, 0))
	h.clock.Now = at(9, 10)

	got, err := uc.Execute(context.Background(), h.fx.Principal, UpdateStatusInput{
		SalonID:       h.fx.Salon.ID,
		AppointmentID: ap.ID,
		Status:        "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, 1, fs.calls)
	assert.Equal(t, 1, logs.FilterMessage("stats update failed, ledger kept").Len())

	var stored models.Appointment
	require.NoError(t, h.db.First(&stored, "id = ?", ap.ID).Error)
	assert.Equal(t, "completed", stored.Status)
}

func TestRevenueUsesCurrentPrice(t *testing.T) {
	h := newHarness(t)
	ap := h.book(t, at(9, 0))

	require.NoError(t, h.db.Model(&models.Service{}).
		Where("id = ?", h.fx.Service.ID).
		Update("price_dkk", decimal.NewFromInt(400)).Error)

	h.clock.Now = at(9, 10)
	_, err := h.setStatus(ap.ID, "completed")
	require.NoError(t, err)

	assert.True(t, h.stats(t).TotalRevenue.Equal(decimal.NewFromInt(400)))
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	booked := h.book(t, at(9, 0))
	require.NoError(t, h.deleter.Execute(ctx, h.fx.Principal, h.fx.Salon.ID, booked.ID))

	var n int64
	require.NoError(t, h.db.Model(&models.Appointment{}).Where("id = ?", booked.ID).Count(&n).Error)
	assert.Zero(t, n)

	err := h.deleter.Execute(ctx, h.fx.Principal, h.fx.Salon.ID, booked.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestDeleteCompleted_Forbidden(t *testing.T) {
	h := newHarness(t)
	ap := h.book(t, at(9, 0))
	h.clock.Now = at(9, 10)
	_, err := h.setStatus(ap.ID, "completed")
	require.NoError(t, err)

	err = h.deleter.Execute(context.Background(), h.fx.Principal, h.fx.Salon.ID, ap.ID)

	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	var n int64
	require.NoError(t, h.db.Model(&models.Appointment{}).Where("id = ?", ap.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
