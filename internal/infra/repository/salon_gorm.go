package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

func (r *SalonGormRepository) GetSalon(
	ctx context.Context,
	salonID uuid.UUID,
) (*models.Salon, error) {

	var s models.Salon
	if err := r.db.WithContext(ctx).
		Where("id = ?", salonID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SalonGormRepository) ListOpeningHours(
	ctx context.Context,
	salonID uuid.UUID,
) ([]models.OpeningHours, error) {

	var rows []models.OpeningHours
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SalonGormRepository) ReplaceOpeningHours(
	ctx context.Context,
	salonID uuid.UUID,
	days []models.OpeningHours,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("salon_id = ?", salonID).
			Delete(&models.OpeningHours{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

// Compile-time check
var _ salon.Repository = (*SalonGormRepository)(nil)
