package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/bookingcode"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucCustomer "github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID   uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	Contact   domain.Contact
	StartsAt  time.Time
}

type GuestAppointmentInput struct {
	CreateAppointmentInput
	Surname string
}

type CreateAppointmentOutput struct {
	Appointment *models.Appointment
	BookingCode string
}

const bookingCodeInsertAttempts = 3

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	resolver *ucCustomer.Resolver
	codes    *bookingcode.Generator
	audit    *audit.Dispatcher
	events   events.Publisher
	notifier *notify.Dispatcher
	log      *logger.Logger
	clock    timezone.Clock

	bcryptCost int
}

type CreateAppointmentDeps struct {
	Repo     domain.Repository
	Resolver *ucCustomer.Resolver
	Codes    *bookingcode.Generator
	Audit    *audit.Dispatcher
	Events   events.Publisher
	Notifier *notify.Dispatcher
	Log      *logger.Logger
	Clock    timezone.Clock

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

func NewCreateAppointment(d CreateAppointmentDeps) *CreateAppointment {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Clock == nil {
		d.Clock = timezone.SystemClock
	}
	if d.Resolver == nil {
		d.Resolver = ucCustomer.NewResolver(d.Log)
	}
	if d.Codes == nil {
		d.Codes = bookingcode.NewGenerator()
	}
	if d.Events == nil {
		d.Events = events.NopPublisher{}
	}
	if d.BcryptCost == 0 {
		d.BcryptCost = bcrypt.DefaultCost
	}
	return &CreateAppointment{
		repo:       d.Repo,
		resolver:   d.Resolver,
		codes:      d.Codes,
		audit:      d.Audit,
		events:     d.Events,
		notifier:   d.Notifier,
		log:        d.Log.With("usecase", "CreateAppointment"),
		clock:      d.Clock,
		bcryptCost: d.BcryptCost,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books on behalf of an authenticated staff user of the salon.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	p *auth.Principal,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := requireMember(p, in.SalonID); err != nil {
		return nil, err
	}

	out, err := uc.create(ctx, in, p.UserID, nil)
	if err != nil {
		return nil, err
	}
	return out.Appointment, nil
}

// ExecuteGuest books from the public page. The appointment gets a booking
// code and the surname hash used for self-service lookup; it has no creator.
func (uc *CreateAppointment) ExecuteGuest(
	ctx context.Context,
	in GuestAppointmentInput,
) (*CreateAppointmentOutput, error) {

	surname := strings.ToLower(strings.TrimSpace(in.Surname))
	if surname == "" {
		return nil, httperr.Validation("invalid_contact", map[string]string{
			"customer_surname": "required",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(surname), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	guest := &guestFields{surnameHash: string(hash)}
	out, err := uc.create(ctx, in.CreateAppointmentInput, "", guest)
	if err != nil {
		return nil, err
	}

	uc.notifier.Enqueue(notify.Message{
		To:   out.Appointment.CustomerPhone,
		Body: notify.BookingConfirmation(guest.salonName, out.BookingCode, out.Appointment.StartsAt.In(guest.loc)),
	})

	return out, nil
}

type guestFields struct {
	surnameHash string

	// filled during create
	salonName string
	loc       *time.Location
}

func (uc *CreateAppointment) create(
	ctx context.Context,
	in CreateAppointmentInput,
	actor string,
	guest *guestFields,
) (*CreateAppointmentOutput, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	contact := in.Contact.Normalized()
	if err := contact.Validate(); err != nil {
		return nil, err
	}
	if in.StartsAt.IsZero() {
		return nil, httperr.Validation("invalid_start", map[string]string{
			"starts_at": "required",
		})
	}

	now := uc.clock()
	if in.StartsAt.Before(now.Add(-pastGrace)) {
		return nil, httperr.Validation("start_in_past", map[string]string{
			"starts_at": "must not be in the past",
		})
	}

	// --------------------------------------------------
	// 2. Directories
	// --------------------------------------------------
	salon, loc, err := salonLocation(ctx, uc.repo, in.SalonID)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID)
	if err != nil {
		return nil, notFoundAs(err, "staff_not_found")
	}
	if !staff.Active {
		return nil, httperr.Validation("staff_inactive", map[string]string{
			"staff_id": "inactive",
		})
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}
	if !service.Active {
		return nil, httperr.Validation("service_inactive", map[string]string{
			"service_id": "inactive",
		})
	}
	if service.DurationMinutes <= 0 {
		return nil, httperr.Validation("invalid_service", map[string]string{
			"duration_minutes": "must be positive",
		})
	}
	if service.PriceDkk.IsNegative() {
		return nil, httperr.Validation("invalid_service", map[string]string{
			"price_dkk": "must not be negative",
		})
	}

	start := in.StartsAt.UTC()
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	if guest != nil {
		guest.salonName = salon.Name
		guest.loc = loc
	}

	// --------------------------------------------------
	// 3. Ledger write (staff timeline locked)
	// --------------------------------------------------
	var created *models.Appointment
	var code string

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockStaff(ctx, in.SalonID, in.StaffID); err != nil {
			return notFoundAs(err, "staff_not_found")
		}

		conflict, err := tx.FindConflict(ctx, in.StaffID, start, end)
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.Conflict("time_conflict")
		}

		cust, err := uc.resolver.Resolve(ctx, tx, in.SalonID, customer.Contact{
			Name:  contact.Name,
			Phone: contact.Phone,
			Email: contact.Email,
		}, now)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			SalonID:       in.SalonID,
			StaffID:       in.StaffID,
			ServiceID:     service.ID,
			CustomerID:    &cust.ID,
			CustomerName:  contact.Name,
			CustomerPhone: contact.Phone,
			CustomerEmail: contact.Email,
			StartsAt:      start,
			EndsAt:        end,
			Status:        string(domain.InitialStatus()),
		}

		if guest != nil {
			ap.CustomerSurnameHash = guest.surnameHash
			code, err = uc.insertWithCode(ctx, tx, ap)
		} else {
			creator := actor
			ap.CreatedBy = &creator
			err = tx.CreateAppointment(ctx, ap)
		}
		if err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.Conflict("time_conflict")
			}
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				SalonID: in.SalonID,
				Actor:   actorOrGuest(actor),
				Action:  audit.ActionAppointmentConflict,
				Entity:  audit.EntityAppointment,
				Metadata: map[string]any{
					"staff_id": in.StaffID,
					"start":    start,
					"end":      end,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		Actor:    actorOrGuest(actor),
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: &created.ID,
	})
	publish(ctx, uc.events, uc.log, events.TypeAppointmentCreated, created, now)

	uc.log.Info("appointment created",
		"salon_id", in.SalonID,
		"appointment_id", created.ID,
		"staff_id", in.StaffID,
		"guest", guest != nil,
	)

	return &CreateAppointmentOutput{Appointment: created, BookingCode: code}, nil
}

// insertWithCode draws a free booking code and inserts ap. A code taken by
// a concurrent guest booking between the check and the insert shows up as a
// unique violation; the code is drawn again.
func (uc *CreateAppointment) insertWithCode(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
) (string, error) {

	for attempt := 1; ; attempt++ {
		code, err := uc.codes.Unique(ctx, tx.BookingCodeExists)
		if err != nil {
			return "", err
		}
		ap.BookingCode = &code

		err = tx.CreateAppointment(ctx, ap)
		if err == nil {
			return code, nil
		}
		if !httperr.IsUniqueViolation(err) || attempt >= bookingCodeInsertAttempts {
			return "", err
		}
		uc.log.Debug("booking code taken on insert, drawing again",
			"salon_id", ap.SalonID,
			"attempt", attempt,
		)
	}
}

func actorOrGuest(actor string) string {
	if actor == "" {
		return "guest"
	}
	return actor
}
