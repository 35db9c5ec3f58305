package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a deduplicated identity inside one salon. NormalizedPhone is
// unique per salon; Phone keeps the form the customer typed last.
type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_salon_phone,priority:1;index:idx_customers_salon_email,priority:1" json:"salon_id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	Phone           string `gorm:"size:30;not null" json:"phone"`
	NormalizedPhone string `gorm:"size:30;not null;uniqueIndex:idx_customers_salon_phone,priority:2" json:"-"`
	Email           string `gorm:"size:100;index:idx_customers_salon_email,priority:2" json:"email,omitempty"`

	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `gorm:"index" json:"last_seen_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
