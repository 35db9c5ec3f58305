package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// NormalizePhone strips the separators validators.IsPhoneValid accepts
// (whitespace, hyphens, dots and parentheses) so that "12 34 56 78",
// "12.34.56.78" and "12345678" compare equal.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '.', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Contact is the set of details supplied by one booking.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// New builds a first-seen customer from a booking contact.
func New(salonID uuid.UUID, c Contact, now time.Time) *models.Customer {
	ts := now.UTC()
	return &models.Customer{
		SalonID:         salonID,
		Name:            c.Name,
		Phone:           c.Phone,
		NormalizedPhone: NormalizePhone(c.Phone),
		Email:           c.Email,
		FirstSeenAt:     ts,
		LastSeenAt:      ts,
	}
}

// Merge applies the last-write-wins rule for repeat bookings: the newest
// booking is authoritative for contact details, so any supplied field that
// differs overwrites the stored one. An empty email never clears a stored
// one. LastSeenAt is always bumped. It reports whether a contact field
// changed.
func Merge(existing *models.Customer, c Contact, now time.Time) bool {
	changed := false

	if c.Name != "" && c.Name != existing.Name {
		existing.Name = c.Name
		changed = true
	}
	if c.Phone != "" && c.Phone != existing.Phone {
		existing.Phone = c.Phone
		existing.NormalizedPhone = NormalizePhone(c.Phone)
		changed = true
	}
	if c.Email != "" && c.Email != existing.Email {
		existing.Email = c.Email
		changed = true
	}

	existing.LastSeenAt = now.UTC()
	return changed
}
