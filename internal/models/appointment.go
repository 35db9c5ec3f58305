package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is one reservation of a staff member's time. The customer
// fields are a snapshot taken at booking time and are never refreshed from
// the Customer row.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SalonID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_salon_start,priority:1;index:idx_appointments_salon_status,priority:1" json:"salon_id"`

	StaffID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_staff_start,priority:1" json:"staff_id"`
	Staff   *Staff    `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"staff,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:30;not null" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email,omitempty"`

	// Guest self-service: the code is public, the surname hash is the secret.
	BookingCode         *string `gorm:"size:12;uniqueIndex" json:"booking_code,omitempty"`
	CustomerSurnameHash string  `gorm:"size:100" json:"-"`

	StartsAt time.Time `gorm:"not null;index:idx_appointments_staff_start,priority:2;index:idx_appointments_salon_start,priority:2" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	Status string `gorm:"size:20;not null;default:'booked';index:idx_appointments_salon_status,priority:2" json:"status"`

	CreatedBy   *string    `gorm:"size:100" json:"created_by,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
