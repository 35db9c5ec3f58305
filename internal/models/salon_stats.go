package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalonStats is derived data: lifetime totals over completed appointments.
// It can always be rebuilt from the appointments table.
type SalonStats struct {
	SalonID uuid.UUID `gorm:"type:uuid;primaryKey" json:"salon_id"`

	TotalVisits  int64           `gorm:"not null;default:0" json:"total_visits"`
	TotalRevenue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_revenue"`

	LastUpdated time.Time `json:"last_updated"`
}

func (SalonStats) TableName() string { return "salon_stats" }
