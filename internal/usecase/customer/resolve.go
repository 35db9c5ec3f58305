package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Resolver maps booking contact details to one customer per salon.
type Resolver struct {
	log *logger.Logger
}

func NewResolver(log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{log: log.With("usecase", "ResolveCustomer")}
}

// Resolve matches on normalized phone first, then on exact email, and
// otherwise creates a new customer. A matched customer is refreshed with
// the supplied details. Pass a transaction-bound store to make resolution
// part of the booking.
func (r *Resolver) Resolve(
	ctx context.Context,
	store domain.Store,
	salonID uuid.UUID,
	c domain.Contact,
	now time.Time,
) (*models.Customer, error) {

	c.Email = strings.TrimSpace(c.Email)
	normalized := domain.NormalizePhone(c.Phone)
	if normalized == "" {
		return nil, httperr.Validation("invalid_contact", map[string]string{
			"customer_phone": "required",
		})
	}

	// --------------------------------------------------
	// 1. Phone
	// --------------------------------------------------
	existing, err := store.FindCustomerByPhone(ctx, salonID, normalized)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return r.refresh(ctx, store, existing, c, now)
	}

	// --------------------------------------------------
	// 2. Email
	// --------------------------------------------------
	if c.Email != "" {
		existing, err = store.FindCustomerByEmail(ctx, salonID, c.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return r.refresh(ctx, store, existing, c, now)
		}
	}

	// --------------------------------------------------
	// 3. New customer
	// --------------------------------------------------
	created := domain.New(salonID, c, now)
	err = store.CreateCustomer(ctx, created)
	if err == nil {
		return created, nil
	}
	if !httperr.IsUniqueViolation(err) {
		return nil, err
	}

	// a concurrent booking created the same phone first
	r.log.Debug("customer insert lost race, refetching", "salon_id", salonID)
	existing, err = store.FindCustomerByPhone(ctx, salonID, normalized)
	if err != nil {
		return nil, err
	}
	return r.refresh(ctx, store, existing, c, now)
}

func (r *Resolver) refresh(
	ctx context.Context,
	store domain.Store,
	existing *models.Customer,
	c domain.Contact,
	now time.Time,
) (*models.Customer, error) {
	domain.Merge(existing, c, now)
	err := store.SaveCustomer(ctx, existing)
	if err == nil {
		return existing, nil
	}
	if !httperr.IsUniqueViolation(err) {
		return nil, err
	}

	// an email match moved to a phone that a concurrent booking just
	// inserted; the phone owner wins
	r.log.Debug("customer phone taken during refresh, refetching",
		"salon_id", existing.SalonID,
		"customer_id", existing.ID,
	)
	owner, err := store.FindCustomerByPhone(ctx, existing.SalonID, existing.NormalizedPhone)
	if err != nil {
		return nil, err
	}
	domain.Merge(owner, c, now)
	if err := store.SaveCustomer(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}
