package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCheckTransition(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name     string
		from, to Status
		start    time.Time
		kind     httperr.Kind
	}{
		{"booked to cancelled", StatusBooked, StatusCancelled, future, ""},
		{"booked to completed after start", StatusBooked, StatusCompleted, past, ""},
		{"booked to completed at start", StatusBooked, StatusCompleted, now, ""},
		{"booked to completed before start", StatusBooked, StatusCompleted, future, httperr.KindInvalidTransition},
		{"completed to cancelled correction", StatusCompleted, StatusCancelled, past, ""},
		{"same status", StatusBooked, StatusBooked, future, ""},
		{"cancelled is terminal", StatusCancelled, StatusBooked, future, httperr.KindInvalidTransition},
		{"cancelled to completed", StatusCancelled, StatusCompleted, past, httperr.KindInvalidTransition},
		{"completed back to booked", StatusCompleted, StatusBooked, past, httperr.KindInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTransition(tc.from, tc.to, tc.start, now)
			if tc.kind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.kind, httperr.KindOf(err))
		})
	}
}

func TestStatsEffect(t *testing.T) {
	assert.Equal(t, 1, StatsEffect(StatusBooked, StatusCompleted))
	assert.Equal(t, -1, StatsEffect(StatusCompleted, StatusCancelled))
	assert.Equal(t, 0, StatsEffect(StatusBooked, StatusCancelled))
	assert.Equal(t, 0, StatsEffect(StatusCompleted, StatusCompleted))
}

func TestCanDelete(t *testing.T) {
	assert.NoError(t, CanDelete(StatusBooked))
	assert.NoError(t, CanDelete(StatusCancelled))
	assert.True(t, httperr.IsKind(CanDelete(StatusCompleted), httperr.KindForbidden))
}

func TestApplyStatus_StampsTimestamps(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusBooked), StartsAt: now.Add(-time.Hour)}

	effect, err := ApplyStatus(ap, StatusCompleted, now)
	require.NoError(t, err)
	assert.Equal(t, 1, effect)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)

	effect, err = ApplyStatus(ap, StatusCancelled, now)
	require.NoError(t, err)
	assert.Equal(t, -1, effect)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("completed")
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, s)

	_, ok = ParseStatus("scheduled")
	assert.False(t, ok)
}
