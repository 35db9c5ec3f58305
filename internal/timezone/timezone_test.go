package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestDayBounds_SpansOneCalendarDay(t *testing.T) {
	loc := Location("Europe/Copenhagen")
	date := time.Date(2026, time.March, 10, 14, 30, 0, 0, loc)

	start, end := DayBounds(date, loc)

	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 0, 0, 0, loc), end)
}
