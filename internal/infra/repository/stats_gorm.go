package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/stats"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) InTx(
	ctx context.Context,
	fn func(tx stats.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StatsGormRepository{db: tx})
	})
}

func (r *StatsGormRepository) LockOrCreate(
	ctx context.Context,
	salonID uuid.UUID,
) (*models.SalonStats, error) {

	seed := models.SalonStats{
		SalonID:      salonID,
		TotalRevenue: decimal.Zero,
		LastUpdated:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error; err != nil {
		return nil, err
	}

	var row models.SalonStats
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("salon_id = ?", salonID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *StatsGormRepository) Get(
	ctx context.Context,
	salonID uuid.UUID,
) (*models.SalonStats, error) {

	var row models.SalonStats
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *StatsGormRepository) Save(
	ctx context.Context,
	row *models.SalonStats,
) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *StatsGormRepository) SumCompleted(
	ctx context.Context,
	salonID uuid.UUID,
) (stats.Totals, error) {

	var out struct {
		Visits  int64
		Revenue decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS visits,
			COALESCE(SUM(s.price_dkk), 0) AS revenue
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.salon_id = ? AND a.status = 'completed'
	`, salonID).Scan(&out).Error
	if err != nil {
		return stats.Totals{}, err
	}

	return stats.Totals{Visits: out.Visits, Revenue: out.Revenue.Round(2)}, nil
}

func (r *StatsGormRepository) ListSalonIDs(
	ctx context.Context,
) ([]uuid.UUID, error) {

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Compile-time check
var _ stats.Repository = (*StatsGormRepository)(nil)
