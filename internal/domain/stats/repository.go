package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository is the only write path to the salon_stats table.
type Repository interface {
	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// LockOrCreate returns the salon's stats row under a row lock, inserting
	// a zero row first when none exists.
	LockOrCreate(
		ctx context.Context,
		salonID uuid.UUID,
	) (*models.SalonStats, error)

	Get(
		ctx context.Context,
		salonID uuid.UUID,
	) (*models.SalonStats, error)

	Save(
		ctx context.Context,
		row *models.SalonStats,
	) error

	// SumCompleted counts completed appointments and sums the current price
	// of their services.
	SumCompleted(
		ctx context.Context,
		salonID uuid.UUID,
	) (Totals, error)

	ListSalonIDs(
		ctx context.Context,
	) ([]uuid.UUID, error)
}
