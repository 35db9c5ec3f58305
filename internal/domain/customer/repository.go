package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Store is what identity resolution needs. It is embedded in the
// appointment repository so resolution runs inside the booking transaction.
type Store interface {
	FindCustomerByPhone(
		ctx context.Context,
		salonID uuid.UUID,
		normalizedPhone string,
	) (*models.Customer, error)

	FindCustomerByEmail(
		ctx context.Context,
		salonID uuid.UUID,
		email string,
	) (*models.Customer, error)

	// CreateCustomer must not poison an enclosing transaction when it fails
	// on the (salon_id, normalized_phone) unique index.
	CreateCustomer(
		ctx context.Context,
		c *models.Customer,
	) error

	// SaveCustomer has the same contract; a phone change can collide too.
	SaveCustomer(
		ctx context.Context,
		c *models.Customer,
	) error
}

type ListFilter struct {
	SalonID  uuid.UUID
	Search   string
	Page     int
	PageSize int
}

// Stats summarizes one customer's history in a salon.
type Stats struct {
	TotalBookings int64           `json:"total_bookings"`
	Completed     int64           `json:"completed"`
	Cancelled     int64           `json:"cancelled"`
	Booked        int64           `json:"booked"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	CancelRate    float64         `json:"cancel_rate"`
}

// Directory is the read side used by staff screens.
type Directory interface {
	ListCustomers(
		ctx context.Context,
		f ListFilter,
	) ([]models.Customer, int64, error)

	GetCustomer(
		ctx context.Context,
		salonID uuid.UUID,
		customerID uuid.UUID,
	) (*models.Customer, error)

	CustomerStats(
		ctx context.Context,
		salonID uuid.UUID,
		customerID uuid.UUID,
	) (*Stats, error)
}
