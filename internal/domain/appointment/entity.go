package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves ap to the target status, stamping the matching
// timestamp. It returns the stats effect of the change.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) (int, error) {
	from := Status(ap.Status)
	if err := CheckTransition(from, to, ap.StartsAt, now); err != nil {
		return 0, err
	}
	if from == to {
		return 0, nil
	}

	ts := now.UTC()
	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &ts
	case StatusCompleted:
		ap.CompletedAt = &ts
	}

	return StatsEffect(from, to), nil
}
