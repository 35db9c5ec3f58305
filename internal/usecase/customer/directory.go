package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListCustomersOutput struct {
	Customers []models.Customer `json:"customers"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
}

type ListCustomers struct {
	repo domain.Directory
}

func NewListCustomers(repo domain.Directory) *ListCustomers {
	return &ListCustomers{repo: repo}
}

func (uc *ListCustomers) Execute(
	ctx context.Context,
	f domain.ListFilter,
) (*ListCustomersOutput, error) {

	if f.Page < 1 {
		f.Page = 1
	}

	rows, total, err := uc.repo.ListCustomers(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Customer{}
	}

	return &ListCustomersOutput{Customers: rows, Total: total, Page: f.Page}, nil
}

type CustomerWithStats struct {
	Customer *models.Customer `json:"customer"`
	Stats    *domain.Stats    `json:"stats"`
}

type GetCustomerStats struct {
	repo domain.Directory
}

func NewGetCustomerStats(repo domain.Directory) *GetCustomerStats {
	return &GetCustomerStats{repo: repo}
}

func (uc *GetCustomerStats) Execute(
	ctx context.Context,
	salonID uuid.UUID,
	customerID uuid.UUID,
) (*CustomerWithStats, error) {

	c, err := uc.repo.GetCustomer(ctx, salonID, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("customer_not_found")
	}
	if err != nil {
		return nil, err
	}

	st, err := uc.repo.CustomerStats(ctx, salonID, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerWithStats{Customer: c, Stats: st}, nil
}
