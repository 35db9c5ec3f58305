package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpeningHours holds one weekday of a salon's schedule. Times are "15:04"
// strings in the salon's timezone; the break is optional.
type OpeningHours struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_opening_hours_salon_weekday,priority:1;not null" json:"salon_id"`

	Weekday int `gorm:"uniqueIndex:idx_opening_hours_salon_weekday,priority:2" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`
	Open       bool   `json:"open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *OpeningHours) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
