package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestLogger_ListFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	l := New(db)
	ctx := context.Background()
	salonID := uuid.New()
	id := uuid.New()

	require.NoError(t, l.Log(ctx, Event{SalonID: salonID, Actor: "user-1", Action: ActionAppointmentCreated, Entity: EntityAppointment, EntityID: &id}))
	require.NoError(t, l.Log(ctx, Event{SalonID: salonID, Actor: "user-1", Action: ActionAppointmentStatus, Entity: EntityAppointment, EntityID: &id,
		Metadata: map[string]any{"from": "booked", "to": "completed"}}))
	require.NoError(t, l.Log(ctx, Event{SalonID: salonID, Actor: "system", Action: ActionStatsDrift, Entity: EntitySalonStats}))
	require.NoError(t, l.Log(ctx, Event{SalonID: uuid.New(), Actor: "user-9", Action: ActionAppointmentCreated}))

	rows, total, err := l.List(ctx, ListFilter{SalonID: salonID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)

	rows, total, err = l.List(ctx, ListFilter{SalonID: salonID, Entity: EntityAppointment, Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 1)

	rows, _, err = l.List(ctx, ListFilter{SalonID: salonID, Action: ActionAppointmentStatus})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.JSONEq(t, `{"from":"booked","to":"completed"}`, rows[0].Metadata)

	future := time.Now().Add(time.Hour)
	_, total, err = l.List(ctx, ListFilter{SalonID: salonID, From: &future})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
