package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository is the ledger's storage port. Lookups that miss return
// gorm.ErrRecordNotFound; callers turn that into a NotFound business error.
type Repository interface {
	customer.Store

	// -------- Transactions --------
	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Directories --------
	GetSalon(
		ctx context.Context,
		salonID uuid.UUID,
	) (*models.Salon, error)

	GetStaff(
		ctx context.Context,
		salonID uuid.UUID,
		staffID uuid.UUID,
	) (*models.Staff, error)

	// LockStaff takes a row lock on the staff member for the rest of the
	// transaction, serializing writers to that staff member's timeline.
	LockStaff(
		ctx context.Context,
		salonID uuid.UUID,
		staffID uuid.UUID,
	) (*models.Staff, error)

	GetService(
		ctx context.Context,
		salonID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	GetOpeningHours(
		ctx context.Context,
		salonID uuid.UUID,
		weekday int,
	) (*models.OpeningHours, error)

	// -------- Appointment (create / conflict) --------
	FindConflict(
		ctx context.Context,
		staffID uuid.UUID,
		start time.Time,
		end time.Time,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	BookingCodeExists(
		ctx context.Context,
		code string,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		salonID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	LockAppointment(
		ctx context.Context,
		salonID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) error

	// -------- Reads --------
	ListBusyForStaff(
		ctx context.Context,
		staffID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListBusyForSalon(
		ctx context.Context,
		salonID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uuid.UUID,
		staffID *uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	FindByBookingCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)
}
