package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCheckAvailability(t *testing.T) {
	h := newHarness(t)
	uc := NewCheckAvailability(h.repo)
	ctx := context.Background()
	ap := h.book(t, at(9, 0))

	res, err := uc.Execute(ctx, AvailabilityWindow{SalonID: h.fx.Salon.ID, StaffID: h.fx.Staff.ID, Start: at(9, 15), End: at(9, 45)})
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.NotNil(t, res.ConflictID)
	assert.Equal(t, ap.ID, *res.ConflictID)

	res, err = uc.Execute(ctx, AvailabilityWindow{SalonID: h.fx.Salon.ID, StaffID: h.fx.Staff.ID, Start: at(9, 30), End: at(10, 0)})
	require.NoError(t, err)
	assert.True(t, res.Available)

	_, err = uc.Execute(ctx, AvailabilityWindow{SalonID: h.fx.Salon.ID, StaffID: h.fx.Staff.ID, Start: at(10, 0), End: at(10, 0)})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestListFreeSlots(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.db.Create(&models.OpeningHours{
		SalonID:    h.fx.Salon.ID,
		Weekday:    int(day.Weekday()),
		StartTime:  "09:00",
		EndTime:    "12:00",
		BreakStart: "10:30",
		BreakEnd:   "11:00",
		Open:       true,
	}).Error)
	h.book(t, at(9, 30))

	slots, err := NewListFreeSlots(h.repo, h.clock.Clock()).Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   h.fx.Salon.ID,
		StaffID:   h.fx.Staff.ID,
		ServiceID: h.fx.Service.ID,
		Date:      day,
	})
	require.NoError(t, err)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "11:30"}, starts)
}

func TestListFreeSlots_ClosedDay(t *testing.T) {
	h := newHarness(t)

	slots, err := NewListFreeSlots(h.repo, h.clock.Clock()).Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   h.fx.Salon.ID,
		StaffID:   h.fx.Staff.ID,
		ServiceID: h.fx.Service.ID,
		Date:      day,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListPublicBusy_HidesCancelledAndCustomers(t *testing.T) {
	h := newHarness(t)
	kept := h.book(t, at(9, 0))
	gone := h.book(t, at(10, 0))
	_, err := h.setStatus(gone.ID, "cancelled")
	require.NoError(t, err)

	busy, err := NewListPublicBusy(h.repo).Execute(context.Background(), h.fx.Salon.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, busy, 1)
	assert.Equal(t, kept.ID, busy[0].ID)
	assert.Equal(t, h.fx.Staff.ID, busy[0].StaffID)

	_, err = NewListPublicBusy(h.repo).Execute(context.Background(), h.fx.Salon.ID, day, day.AddDate(0, 3, 0))
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestListByDateAndMonth(t *testing.T) {
	h := newHarness(t)
	other := h.fx.AddStaff(t, h.db, "Mads")
	ctx := context.Background()

	h.book(t, at(9, 0))
	_, err := h.create.Execute(ctx, h.fx.Principal, h.input(other.ID, at(9, 0)))
	require.NoError(t, err)
	_, err = h.create.Execute(ctx, h.fx.Principal, h.input(other.ID, at(24+9, 0)))
	require.NoError(t, err)

	byDate := NewListAppointmentsByDate(h.repo)
	all, err := byDate.Execute(ctx, h.fx.Principal, h.fx.Salon.ID, nil, "2026-06-01")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Haircut", all[0].ServiceName)

	staffID := other.ID
	mine, err := byDate.Execute(ctx, h.fx.Principal, h.fx.Salon.ID, &staffID, "2026-06-01")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mads", mine[0].StaffName)

	_, err = byDate.Execute(ctx, h.fx.Principal, h.fx.Salon.ID, nil, "01-06-2026")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	month, err := NewListAppointmentsByMonth(h.repo).Execute(ctx, h.fx.Principal, h.fx.Salon.ID, nil, 2026, 6)
	require.NoError(t, err)
	assert.Len(t, month, 3)
}
