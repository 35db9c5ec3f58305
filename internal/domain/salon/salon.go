package salon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	GetSalon(ctx context.Context, salonID uuid.UUID) (*models.Salon, error)
	ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]models.OpeningHours, error)

	// ReplaceOpeningHours swaps the whole weekly schedule atomically.
	ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, days []models.OpeningHours) error
}

// Day is one weekday of a schedule as entered in the settings screen.
type Day struct {
	Weekday    int    `json:"weekday"`
	Open       bool   `json:"open"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

func parseHM(s string) (time.Duration, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

// ValidateSchedule checks every day and reports all problems at once,
// keyed by "days[i].field".
func ValidateSchedule(days []Day) error {
	fields := map[string]string{}
	seen := map[int]bool{}

	for i, d := range days {
		key := func(f string) string { return fmt.Sprintf("days[%d].%s", i, f) }

		if d.Weekday < 0 || d.Weekday > 6 {
			fields[key("weekday")] = "must be 0-6"
			continue
		}
		if seen[d.Weekday] {
			fields[key("weekday")] = "duplicate"
			continue
		}
		seen[d.Weekday] = true

		if !d.Open {
			continue
		}

		start, ok1 := parseHM(d.StartTime)
		end, ok2 := parseHM(d.EndTime)
		if !ok1 {
			fields[key("start_time")] = "expected HH:MM"
		}
		if !ok2 {
			fields[key("end_time")] = "expected HH:MM"
		}
		if !ok1 || !ok2 {
			continue
		}
		if end <= start {
			fields[key("end_time")] = "must be after start_time"
			continue
		}

		if d.BreakStart == "" && d.BreakEnd == "" {
			continue
		}
		bs, ok1 := parseHM(d.BreakStart)
		be, ok2 := parseHM(d.BreakEnd)
		if !ok1 || !ok2 || be <= bs {
			fields[key("break_end")] = "break needs a valid start and end"
			continue
		}
		if bs < start || be > end {
			fields[key("break_start")] = "break must be inside opening hours"
		}
	}

	if len(fields) > 0 {
		return httperr.Validation("invalid_opening_hours", fields)
	}
	return nil
}

func ToModels(salonID uuid.UUID, days []Day) []models.OpeningHours {
	out := make([]models.OpeningHours, 0, len(days))
	for _, d := range days {
		oh := models.OpeningHours{
			SalonID: salonID,
			Weekday: d.Weekday,
			Open:    d.Open,
		}
		if d.Open {
			oh.StartTime = d.StartTime
			oh.EndTime = d.EndTime
			oh.BreakStart = d.BreakStart
			oh.BreakEnd = d.BreakEnd
		}
		out = append(out, oh)
	}
	return out
}
