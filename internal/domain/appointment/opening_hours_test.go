package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestResolveOpeningWindow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	require.NoError(t, err)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, loc)

	w, ok := ResolveOpeningWindow(&models.OpeningHours{
		Open: true, StartTime: "09:00", EndTime: "17:00", BreakStart: "12:00", BreakEnd: "12:30",
	}, date, loc)

	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 6, 1, 9, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2026, 6, 1, 17, 0, 0, 0, loc), w.End)
	require.NotNil(t, w.BreakStart)
	assert.Equal(t, time.Date(2026, 6, 1, 12, 0, 0, 0, loc), *w.BreakStart)
}

func TestResolveOpeningWindow_Closed(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, ok := ResolveOpeningWindow(nil, date, time.UTC)
	assert.False(t, ok)

	_, ok = ResolveOpeningWindow(&models.OpeningHours{Open: false, StartTime: "09:00", EndTime: "17:00"}, date, time.UTC)
	assert.False(t, ok)

	_, ok = ResolveOpeningWindow(&models.OpeningHours{Open: true, StartTime: "17:00", EndTime: "09:00"}, date, time.UTC)
	assert.False(t, ok)
}
