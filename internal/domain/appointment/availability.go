package appointment

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityInput struct {
	SalonID   uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Availability is the answer of a window check. ConflictID is set when the
// window is taken.
type Availability struct {
	Available  bool       `json:"available"`
	ConflictID *uuid.UUID `json:"conflict_id,omitempty"`
}

// Interval is a half-open [Start, End) occupation of a staff member.
type Interval struct {
	ID    uuid.UUID
	Start time.Time
	End   time.Time
}

// Overlaps is the half-open interval test: touching boundaries do not
// overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict returns the first interval overlapping [start, end).
func FindConflict(existing []Interval, start, end time.Time) (Interval, bool) {
	for _, iv := range existing {
		if Overlaps(iv.Start, iv.End, start, end) {
			return iv, true
		}
	}
	return Interval{}, false
}

// FreeSlots walks [dayStart, dayEnd) in steps of length and keeps the slots
// that overlap neither the break nor a busy interval. busy must be sorted
// by Start.
func FreeSlots(
	dayStart time.Time,
	dayEnd time.Time,
	length time.Duration,
	breakStart *time.Time,
	breakEnd *time.Time,
	busy []Interval,
) []TimeSlot {
	slots := []TimeSlot{}
	if length <= 0 {
		return slots
	}

	apIdx := 0
	for cur := dayStart; !cur.Add(length).After(dayEnd); cur = cur.Add(length) {
		slotStart := cur
		slotEnd := cur.Add(length)

		if breakStart != nil && breakEnd != nil && Overlaps(slotStart, slotEnd, *breakStart, *breakEnd) {
			continue
		}

		// skip intervals that are already over
		for apIdx < len(busy) && !busy[apIdx].End.After(slotStart) {
			apIdx++
		}

		if _, conflict := FindConflict(busy[apIdx:], slotStart, slotEnd); conflict {
			continue
		}

		slots = append(slots, TimeSlot{Start: slotStart, End: slotEnd})
	}

	return slots
}
