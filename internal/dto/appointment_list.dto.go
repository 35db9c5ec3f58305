package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uuid.UUID  `json:"id"`
	StaffID       uuid.UUID  `json:"staff_id"`
	StaffName     string     `json:"staff_name"`
	ServiceID     uuid.UUID  `json:"service_id"`
	ServiceName   string     `json:"service_name"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        time.Time  `json:"ends_at"`
	Status        string     `json:"status"`
	Guest         bool       `json:"guest"`
}

// ToAppointmentList renders times in loc. Staff and Service should be
// preloaded; missing associations leave the names empty.
func ToAppointmentList(apps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		item := AppointmentListDTO{
			ID:            ap.ID,
			StaffID:       ap.StaffID,
			ServiceID:     ap.ServiceID,
			CustomerID:    ap.CustomerID,
			CustomerName:  ap.CustomerName,
			CustomerPhone: ap.CustomerPhone,
			StartsAt:      ap.StartsAt.In(loc),
			EndsAt:        ap.EndsAt.In(loc),
			Status:        ap.Status,
			Guest:         ap.BookingCode != nil,
		}
		if ap.Staff != nil {
			item.StaffName = ap.Staff.Name
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
		}
		out = append(out, item)
	}
	return out
}

// BusyIntervalDTO is a public view of an occupied slot, without customer data.
type BusyIntervalDTO struct {
	ID       uuid.UUID `json:"id"`
	StaffID  uuid.UUID `json:"staff_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// GuestBookingDTO is what a guest sees after looking up their booking.
type GuestBookingDTO struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	BookingCode   string    `json:"booking_code"`
	Status        string    `json:"status"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	CustomerName  string    `json:"customer_name"`
	SalonName     string    `json:"salon_name"`
	SalonAddress  string    `json:"salon_address"`
	StaffName     string    `json:"staff_name"`
	ServiceName   string    `json:"service_name"`
	DurationMin   int       `json:"duration_minutes"`
}
