package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) ListCustomers(
	ctx context.Context,
	f customer.ListFilter,
) ([]models.Customer, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("salon_id = ?", f.SalonID)

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		phoneLike := "%" + customer.NormalizePhone(s) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR normalized_phone LIKE ?",
			like, like, phoneLike,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var out []models.Customer
	if err := q.
		Order("last_seen_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *CustomerGormRepository) GetCustomer(
	ctx context.Context,
	salonID uuid.UUID,
	customerID uuid.UUID,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", customerID, salonID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerGormRepository) CustomerStats(
	ctx context.Context,
	salonID uuid.UUID,
	customerID uuid.UUID,
) (*customer.Stats, error) {

	var row struct {
		TotalBookings int64
		Completed     int64
		Cancelled     int64
		Booked        int64
		TotalSpent    decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_bookings,
			COALESCE(SUM(CASE WHEN a.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN a.status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled,
			COALESCE(SUM(CASE WHEN a.status = 'booked' THEN 1 ELSE 0 END), 0) AS booked,
			COALESCE(SUM(CASE WHEN a.status = 'completed' THEN s.price_dkk ELSE 0 END), 0) AS total_spent
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.salon_id = ? AND a.customer_id = ?
	`, salonID, customerID).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	out := &customer.Stats{
		TotalBookings: row.TotalBookings,
		Completed:     row.Completed,
		Cancelled:     row.Cancelled,
		Booked:        row.Booked,
		TotalSpent:    row.TotalSpent.Round(2),
	}
	if row.TotalBookings > 0 {
		out.CancelRate = float64(row.Cancelled) / float64(row.TotalBookings)
	}
	return out, nil
}

// Compile-time check
var _ customer.Directory = (*CustomerGormRepository)(nil)
