package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// OpeningWindow is one day of opening hours resolved to absolute times.
type OpeningWindow struct {
	Start      time.Time
	End        time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
}

// ResolveOpeningWindow turns the "15:04" strings of oh into times on date's
// calendar day in loc. It reports false when the salon is closed that day
// or the row is malformed.
func ResolveOpeningWindow(oh *models.OpeningHours, date time.Time, loc *time.Location) (OpeningWindow, bool) {
	if oh == nil || !oh.Open || oh.StartTime == "" || oh.EndTime == "" {
		return OpeningWindow{}, false
	}

	d := date.In(loc)
	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
	}

	start, ok1 := parseHM(oh.StartTime)
	end, ok2 := parseHM(oh.EndTime)
	if !ok1 || !ok2 || !end.After(start) {
		return OpeningWindow{}, false
	}

	w := OpeningWindow{Start: start, End: end}
	if oh.BreakStart != "" && oh.BreakEnd != "" {
		bs, ok1 := parseHM(oh.BreakStart)
		be, ok2 := parseHM(oh.BreakEnd)
		if ok1 && ok2 && be.After(bs) {
			w.BreakStart = &bs
			w.BreakEnd = &be
		}
	}

	return w, true
}
