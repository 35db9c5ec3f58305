package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusBooked, StatusCancelled, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

func InitialStatus() Status {
	return StatusBooked
}

// ===============================
// Transitions
// ===============================

// CheckTransition validates a status change. Legal moves are
// booked→cancelled, booked→completed (only once the appointment has
// started) and completed→cancelled as the correction path. Setting the
// current status again is accepted and treated as a no-op by callers.
func CheckTransition(from, to Status, startsAt, now time.Time) error {
	if from == to {
		return nil
	}

	switch {
	case from == StatusBooked && to == StatusCancelled:
		return nil
	case from == StatusBooked && to == StatusCompleted:
		if startsAt.After(now) {
			return httperr.InvalidTransition("appointment_not_started")
		}
		return nil
	case from == StatusCompleted && to == StatusCancelled:
		return nil
	}

	return httperr.InvalidTransition("invalid_status_transition")
}

// StatsEffect is the change a transition causes in the completed-visit
// aggregate: +1 entering completed, -1 leaving it, 0 otherwise.
func StatsEffect(from, to Status) int {
	switch {
	case from != StatusCompleted && to == StatusCompleted:
		return 1
	case from == StatusCompleted && to != StatusCompleted:
		return -1
	}
	return 0
}

// CanDelete reports whether an appointment in the given status may be
// removed. Completed appointments are part of the revenue record.
func CanDelete(current Status) error {
	if current == StatusCompleted {
		return httperr.Forbidden("appointment_completed")
	}
	return nil
}
